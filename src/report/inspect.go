package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mooso/pheromessage/src/results"
)

// WriteInspection prints record counts and node ranges per partition, and
// lists runs where only one of primary_mean/secondary_mean is present.
func WriteInspection(w io.Writer, records []results.Record) error {
	uniform, preferential := results.Partition(records)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join([]string{"Partition", "Records", "Nodes"}, "\t"))
	fmt.Fprintln(tw, strings.Join([]string{"---", "---", "---"}, "\t"))
	fmt.Fprintf(tw, "uniform\t%d\t%s\n", len(uniform), nodeRange(uniform))
	fmt.Fprintf(tw, "primary/secondary\t%d\t%s\n", len(preferential), nodeRange(preferential))
	fmt.Fprintf(tw, "total\t%d\t%s\n", len(records), nodeRange(records))
	if err := tw.Flush(); err != nil {
		return err
	}

	var odd []string
	for i, r := range records {
		if r.Inconsistent() {
			odd = append(odd, fmt.Sprintf("#%d (nodes=%d)", i+1, r.NodeCount()))
		}
	}
	if len(odd) > 0 {
		fmt.Fprintf(w, "\nRecords with only one of primary_mean/secondary_mean: %s\n", strings.Join(odd, ", "))
	}
	return nil
}

func nodeRange(recs []results.Record) string {
	if len(recs) == 0 {
		return "-"
	}
	lo, hi := recs[0].NodeCount(), recs[0].NodeCount()
	for _, r := range recs[1:] {
		n := r.NodeCount()
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if lo == hi {
		return fmt.Sprintf("%d", lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}
