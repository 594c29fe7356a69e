package results

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

// writeLines writes each record as one JSON line, the way the experiment driver appends them.
func writeLines(t *testing.T, recs ...map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lset")
	var sb strings.Builder
	for _, r := range recs {
		b, err := json.Marshal(r)
		require.NoError(t, err)
		sb.Write(b)
		sb.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func uniformLine(nodes int, mean, p50, p90 float64) map[string]any {
	return map[string]any{
		"nodes": nodes, "fanout": 4, "peers_per_node": 15, "primaries": 0,
		"overall_mean": mean, "primary_mean": nil, "secondary_mean": nil,
		"overall_p50": p50, "overall_p90": p90, "overall_p99": p90 * 2,
	}
}

func preferentialLine(nodes int, overall, primary, secondary float64) map[string]any {
	return map[string]any{
		"nodes": nodes, "fanout": 4, "peers_per_node": 15, "primaries": 4,
		"overall_mean": overall, "primary_mean": primary, "secondary_mean": secondary,
		"overall_p50": overall, "overall_p90": overall,
		"primary_p50": primary / 2, "primary_p90": primary * 2,
		"secondary_p50": secondary / 2, "secondary_p90": secondary * 2,
	}
}

func TestLoad(t *testing.T) {
	path := writeLines(t,
		uniformLine(16, 4200, 3000, 9000),
		preferentialLine(16, 5000, 1500, 6000),
		uniformLine(32, 6400, 5000, 12000),
	)
	recs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, 16, recs[0].NodeCount())
	assert.Equal(t, 4, recs[0].Fanout)
	assert.Nil(t, recs[0].PrimaryMean)
	require.NotNil(t, recs[1].PrimaryMean)
	assert.Equal(t, 1500.0, *recs[1].PrimaryMean)
	require.NotNil(t, recs[0].OverallP99)
	assert.Equal(t, 18000.0, *recs[0].OverallP99)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeEmpty(t *testing.T) {
	recs, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestDecodeSkipsBlankLinesAndFinalLineWithoutNewline(t *testing.T) {
	in := "\n{\"nodes\":8,\"overall_mean\":1000}\n   \n{\"nodes\":16,\"overall_mean\":2000}"
	recs, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 16, recs[1].NodeCount())
}

func TestDecodeMalformed(t *testing.T) {
	in := "{\"nodes\":8,\"overall_mean\":1000}\n{\"nodes\":16,\n"
	_, err := Decode(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDecodeMissingNodes(t *testing.T) {
	_, err := Decode(strings.NewReader("{\"overall_mean\":1000}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodes")
}

// endless yields 'x' forever and never a newline.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	return len(p), nil
}

func TestDecodeStopsAtMaxLineBytes(t *testing.T) {
	_, err := Decode(endless{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line too large")
	assert.Contains(t, err.Error(), "line 1")
}

func TestDecodeLineLongerThanReadBuffer(t *testing.T) {
	pad := strings.Repeat(" ", 64*1024)
	in := "{\"nodes\":8," + pad + "\"overall_mean\":1000}\n{\"nodes\":16}\n"
	recs, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 8, recs[0].NodeCount())
}

func TestPartitionCompleteDisjoint(t *testing.T) {
	recs := []Record{
		{Nodes: n(8), OverallMean: f(1)},
		{Nodes: n(8), OverallMean: f(1), PrimaryMean: f(1), SecondaryMean: f(2)},
		{Nodes: n(16), OverallMean: f(2)},
		{Nodes: n(16), OverallMean: f(2), PrimaryMean: f(1), SecondaryMean: f(3)},
		{Nodes: n(32), OverallMean: f(3), PrimaryMean: f(1)},
	}
	uni, pref := Partition(recs)
	assert.Len(t, uni, 2)
	assert.Len(t, pref, 3)
	assert.Equal(t, len(recs), len(uni)+len(pref))
	for _, r := range uni {
		assert.Nil(t, r.PrimaryMean)
	}
	for _, r := range pref {
		assert.NotNil(t, r.PrimaryMean)
	}
	assert.True(t, recs[4].Inconsistent())
	assert.False(t, recs[1].Inconsistent())
}

func TestPartitionAllUniform(t *testing.T) {
	recs := []Record{{Nodes: n(8), OverallMean: f(1)}, {Nodes: n(16), OverallMean: f(2)}}
	uni, pref := Partition(recs)
	assert.Len(t, uni, 2)
	assert.NotNil(t, pref)
	assert.Empty(t, pref)
}

func TestPartitionEmpty(t *testing.T) {
	uni, pref := Partition(nil)
	assert.Empty(t, uni)
	assert.Empty(t, pref)
}

func TestPointsConvertToMillisAndSortByNodes(t *testing.T) {
	recs := []Record{
		{Nodes: n(64), OverallP90: f(12345)},
		{Nodes: n(16), OverallP90: f(1)},
		{Nodes: n(32)},
		{Nodes: n(8), OverallP90: f(0.5)},
	}
	pts := Points(recs, Overall, P90)
	require.Len(t, pts, 3)
	assert.Equal(t, []Point{{8, 0.5 / 1000}, {16, 1.0 / 1000}, {64, 12345.0 / 1000}}, pts)

	xs, ys := XY(pts)
	assert.Equal(t, []float64{8, 16, 64}, xs)
	assert.Equal(t, 12.345, ys[2])
}

func TestValueByRole(t *testing.T) {
	r := Record{Nodes: n(8), OverallMean: f(1), PrimaryP50: f(2), SecondaryP99: f(3)}
	v, ok := r.Value(Primary, P50)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	v, ok = r.Value(Secondary, P99)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
	_, ok = r.Value(Secondary, Mean)
	assert.False(t, ok)
}

func TestParseMetric(t *testing.T) {
	for _, m := range []Metric{Mean, P50, P90, P99} {
		got, err := ParseMetric(strings.ToUpper(m.String()))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMetric("p75")
	assert.Error(t, err)
}
