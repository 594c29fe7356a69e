package results

import "sort"

// Partition splits records into uniform runs (no primary_mean) and
// primary/secondary runs. Every record lands in exactly one subset and
// input order is kept within each.
func Partition(records []Record) (uniform, preferential []Record) {
	uniform = []Record{}
	preferential = []Record{}
	for _, r := range records {
		if r.Preferential() {
			preferential = append(preferential, r)
		} else {
			uniform = append(uniform, r)
		}
	}
	return uniform, preferential
}

// Point is one plotted sample: node count and latency in milliseconds.
type Point struct {
	Nodes  int
	Millis float64
}

// MicrosToMillis converts a microsecond latency to milliseconds.
func MicrosToMillis(us float64) float64 { return us / 1000 }

// Points collects role/metric values in milliseconds from records that have
// them, ordered by node count (stable for equal counts).
func Points(records []Record, role Role, m Metric) []Point {
	pts := make([]Point, 0, len(records))
	for _, r := range records {
		v, ok := r.Value(role, m)
		if !ok {
			continue
		}
		pts = append(pts, Point{Nodes: r.NodeCount(), Millis: MicrosToMillis(v)})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Nodes < pts[j].Nodes })
	return pts
}

// XY splits points into parallel x/y slices.
func XY(pts []Point) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = float64(p.Nodes)
		ys[i] = p.Millis
	}
	return xs, ys
}
