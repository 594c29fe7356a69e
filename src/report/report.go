// Package report formats gossip results as markdown summaries and plain
// inspection tables.
package report

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mooso/pheromessage/src/results"
	"github.com/mooso/pheromessage/src/trend"
)

type column struct {
	label        string
	role         results.Role
	preferential bool
}

var columns = []column{
	{"Uniform", results.Overall, false},
	{"Primaries", results.Primary, true},
	{"Secondaries", results.Secondary, true},
}

// WriteSummary writes a markdown table per metric (values in ms by node
// count) followed by a logarithmic trend line for every series that spans at
// least two node counts. Repeated runs at one node count are averaged.
func WriteSummary(w io.Writer, records []results.Record, metrics []results.Metric) error {
	uniform, preferential := results.Partition(records)

	fmt.Fprintln(w, "## Gossip time to delivery")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d (%d uniform, %d primary/secondary)\n",
		len(records), len(uniform), len(preferential))
	if len(records) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No records.")
		return nil
	}

	for _, m := range metrics {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "### %s (ms)\n", m)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Nodes | Uniform | Primaries | Secondaries |")
		fmt.Fprintln(w, "|------:|--------:|----------:|------------:|")

		byCol := make([]map[int]float64, len(columns))
		nodeSet := map[int]struct{}{}
		for i, c := range columns {
			subset := uniform
			if c.preferential {
				subset = preferential
			}
			byCol[i] = meanByNodes(results.Points(subset, c.role, m))
			for n := range byCol[i] {
				nodeSet[n] = struct{}{}
			}
		}
		nodes := make([]int, 0, len(nodeSet))
		for n := range nodeSet {
			nodes = append(nodes, n)
		}
		sort.Ints(nodes)

		for _, n := range nodes {
			fmt.Fprintf(w, "| %d |", n)
			for i := range columns {
				fmt.Fprintf(w, " %s |", formatMillis(byCol[i], n))
			}
			fmt.Fprintln(w)
		}

		trends := 0
		for i, c := range columns {
			xs, ys := sortedXY(byCol[i])
			fit, err := trend.FitLogarithmic(xs, ys)
			if errors.Is(err, trend.ErrTooFewPoints) {
				continue
			}
			if err != nil {
				return fmt.Errorf("%s %s trend: %w", c.label, m, err)
			}
			if trends == 0 {
				fmt.Fprintln(w)
			}
			trends++
			fmt.Fprintf(w, "- %s: `%s` (R² %.3f)\n", c.label, fit, fit.RSquared())
		}
	}
	return nil
}

func meanByNodes(pts []results.Point) map[int]float64 {
	grouped := map[int][]float64{}
	for _, p := range pts {
		grouped[p.Nodes] = append(grouped[p.Nodes], p.Millis)
	}
	out := make(map[int]float64, len(grouped))
	for n, vs := range grouped {
		out[n] = stat.Mean(vs, nil)
	}
	return out
}

func sortedXY(vals map[int]float64) ([]float64, []float64) {
	nodes := make([]int, 0, len(vals))
	for n := range vals {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	xs := make([]float64, len(nodes))
	ys := make([]float64, len(nodes))
	for i, n := range nodes {
		xs[i] = float64(n)
		ys[i] = vals[n]
	}
	return xs, ys
}

func formatMillis(vals map[int]float64, n int) string {
	v, ok := vals[n]
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}
