// Package results models gossip experiment results (one JSON object per line)
// and splits them into uniform and primary/secondary delivery runs.
package results

import (
	"fmt"
	"strings"
)

// Record is one experiment run. Latencies are in microseconds.
// Optional values are nil when the field is null or missing on the line.
type Record struct {
	Nodes        *int `json:"nodes"`
	Fanout       int  `json:"fanout,omitempty"`
	PeersPerNode int  `json:"peers_per_node,omitempty"`
	Primaries    int  `json:"primaries,omitempty"`

	OverallMean *float64 `json:"overall_mean"`
	OverallP50  *float64 `json:"overall_p50"`
	OverallP90  *float64 `json:"overall_p90"`
	OverallP99  *float64 `json:"overall_p99,omitempty"`

	PrimaryMean *float64 `json:"primary_mean"`
	PrimaryP50  *float64 `json:"primary_p50,omitempty"`
	PrimaryP90  *float64 `json:"primary_p90,omitempty"`
	PrimaryP99  *float64 `json:"primary_p99,omitempty"`

	SecondaryMean *float64 `json:"secondary_mean"`
	SecondaryP50  *float64 `json:"secondary_p50,omitempty"`
	SecondaryP90  *float64 `json:"secondary_p90,omitempty"`
	SecondaryP99  *float64 `json:"secondary_p99,omitempty"`
}

// NodeCount returns the node count; Decode guarantees it is set.
func (r Record) NodeCount() int {
	if r.Nodes == nil {
		return 0
	}
	return *r.Nodes
}

// Metric selects which latency statistic to read.
type Metric int

const (
	Mean Metric = iota
	P50
	P90
	P99
)

var metricNames = map[Metric]string{Mean: "mean", P50: "p50", P90: "p90", P99: "p99"}

func (m Metric) String() string {
	if s, ok := metricNames[m]; ok {
		return s
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// ParseMetric accepts mean, p50, p90 or p99 (case-insensitive).
func ParseMetric(s string) (Metric, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for m, name := range metricNames {
		if name == want {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q (want mean, p50, p90 or p99)", s)
}

// Role selects which node population a value describes.
type Role int

const (
	Overall Role = iota
	Primary
	Secondary
)

func (r Role) String() string {
	switch r {
	case Overall:
		return "overall"
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Value returns the raw microsecond value for role and metric.
func (r Record) Value(role Role, m Metric) (float64, bool) {
	var p *float64
	switch role {
	case Overall:
		p = pick(m, r.OverallMean, r.OverallP50, r.OverallP90, r.OverallP99)
	case Primary:
		p = pick(m, r.PrimaryMean, r.PrimaryP50, r.PrimaryP90, r.PrimaryP99)
	case Secondary:
		p = pick(m, r.SecondaryMean, r.SecondaryP50, r.SecondaryP90, r.SecondaryP99)
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

func pick(m Metric, mean, p50, p90, p99 *float64) *float64 {
	switch m {
	case Mean:
		return mean
	case P50:
		return p50
	case P90:
		return p90
	case P99:
		return p99
	}
	return nil
}

// Preferential reports whether the run used primary/secondary delivery.
func (r Record) Preferential() bool { return r.PrimaryMean != nil }

// Inconsistent reports a run where exactly one of primary_mean and
// secondary_mean is present. Such lines are partitioned by primary_mean alone.
func (r Record) Inconsistent() bool {
	return (r.PrimaryMean == nil) != (r.SecondaryMean == nil)
}
