// Package charts renders gossip time-to-delivery charts to PNG.
//
// Each chart compares uniform delivery against primary/secondary delivery for
// one latency statistic, plotted in milliseconds against the node count.
package charts

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mooso/pheromessage/src/results"
)

// Definition describes one output chart.
type Definition struct {
	// Name is the file stem; the chart is written to <dir>/<Name>.png.
	Name   string
	Title  string
	Metric results.Metric
	// YMax fixes the y axis to [0, YMax] milliseconds.
	YMax float64
}

// FileName returns the PNG file name for the chart.
func (d Definition) FileName() string { return d.Name + ".png" }

// DefaultDefinitions returns the mean, p50 and p90 charts in that order.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: "gossip_mean_time_to_delivery", Title: "Mean time to delivery", Metric: results.Mean, YMax: 25},
		{Name: "gossip_p50_time_to_delivery", Title: "p50 time to delivery", Metric: results.P50, YMax: 11},
		{Name: "gossip_p90_time_to_delivery", Title: "p90 time to delivery", Metric: results.P90, YMax: 50},
	}
}

// Options controls output size and directory handling.
type Options struct {
	Width  int
	Height int
	// CreateDir creates the output directory when it does not exist.
	CreateDir bool
}

// DefaultOptions matches the default figure size of the original reports.
func DefaultOptions() Options {
	return Options{Width: 600, Height: 600}
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 600
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

// line describes one plotted series: which subset it draws from and how.
type line struct {
	label        string
	role         results.Role
	preferential bool
	color        drawing.Color
}

var lines = []line{
	{label: "Uniform", role: results.Overall, preferential: false, color: chart.ColorBlue},
	{label: "Primaries", role: results.Primary, preferential: true, color: chart.ColorOrange},
	{label: "Secondaries", role: results.Secondary, preferential: true, color: chart.ColorGreen},
}

// lineStyle draws a solid line with small dots so single-point series stay visible.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}
