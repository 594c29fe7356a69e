package trend

import (
	"errors"
	"math"
	"testing"
)

func TestFitLogarithmicRecoversCoefficients(t *testing.T) {
	xs := []float64{8, 16, 32, 64, 128}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 1.5 + 2*math.Log(x+1)
	}
	fit, err := FitLogarithmic(xs, ys)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if math.Abs(fit.A-1.5) > 1e-9 || math.Abs(fit.B-2) > 1e-9 {
		t.Fatalf("unexpected coefficients a=%v b=%v", fit.A, fit.B)
	}
	if math.Abs(fit.PredictY(256)-(1.5+2*math.Log(257))) > 1e-9 {
		t.Fatalf("prediction off: %v", fit.PredictY(256))
	}
	if r2 := fit.RSquared(); math.Abs(r2-1) > 1e-9 {
		t.Fatalf("expected perfect fit, r2=%v", r2)
	}
	if fit.String() != "f(n) = 1.500 + 2.000 * ln(n+1)" {
		t.Fatalf("unexpected string %q", fit.String())
	}
}

func TestFitLogarithmicTooFewPoints(t *testing.T) {
	if _, err := FitLogarithmic([]float64{16, 16}, []float64{1, 2}); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("expected ErrTooFewPoints, got %v", err)
	}
	if _, err := FitLogarithmic(nil, nil); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("expected ErrTooFewPoints, got %v", err)
	}
}

func TestFitLogarithmicLengthMismatch(t *testing.T) {
	if _, err := FitLogarithmic([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatalf("expected error")
	}
}
