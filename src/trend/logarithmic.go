// Package trend fits latency growth against node count.
package trend

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrTooFewPoints is returned when fewer than two distinct x values are given.
var ErrTooFewPoints = errors.New("need at least two distinct x values")

// LogarithmicFit is y = A + B*ln(x+1).
type LogarithmicFit struct {
	A, B float64
	xs   []float64
	ys   []float64
}

// FitLogarithmic performs a least-squares logarithmic fit.
func FitLogarithmic(xs, ys []float64) (*LogarithmicFit, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("length mismatch: %d xs, %d ys", len(xs), len(ys))
	}
	if distinct(xs) < 2 {
		return nil, ErrTooFewPoints
	}

	// Linear regression on ln(x+1); +1 keeps x=0 finite
	X := mat.NewDense(len(xs), 2, nil)
	for i, x := range xs {
		X.Set(i, 0, 1)
		X.Set(i, 1, math.Log(x+1))
	}
	Y := mat.NewVecDense(len(ys), append([]float64(nil), ys...))

	var coef mat.VecDense
	if err := coef.SolveVec(X, Y); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}
	return &LogarithmicFit{
		A:  coef.AtVec(0),
		B:  coef.AtVec(1),
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
	}, nil
}

// PredictY evaluates the fit at x.
func (f *LogarithmicFit) PredictY(x float64) float64 {
	return f.A + f.B*math.Log(x+1)
}

// RSquared is the coefficient of determination over the fitted points.
func (f *LogarithmicFit) RSquared() float64 {
	logXs := make([]float64, len(f.xs))
	for i, x := range f.xs {
		logXs[i] = math.Log(x + 1)
	}
	return stat.RSquared(logXs, f.ys, nil, f.A, f.B)
}

func (f *LogarithmicFit) String() string {
	return fmt.Sprintf("f(n) = %.3f + %.3f * ln(n+1)", f.A, f.B)
}

func distinct(xs []float64) int {
	seen := map[float64]struct{}{}
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}
