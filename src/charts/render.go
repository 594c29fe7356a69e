package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/mooso/pheromessage/src/logging"
	"github.com/mooso/pheromessage/src/results"
)

// buildSeries returns one series per line that has data, plus the node range
// covered by all of them. Lines without points are left out.
func buildSeries(def Definition, uniform, preferential []results.Record) ([]chart.Series, float64, float64) {
	series := []chart.Series{}
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	for _, l := range lines {
		subset := uniform
		if l.preferential {
			subset = preferential
		}
		xs, ys := results.XY(results.Points(subset, l.role, def.Metric))
		if len(xs) == 0 {
			continue
		}
		minX = math.Min(minX, xs[0])
		maxX = math.Max(maxX, xs[len(xs)-1])
		series = append(series, chart.ContinuousSeries{
			Name:    l.label,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(l.color),
		})
	}
	return series, minX, maxX
}

// Render draws one chart as PNG into w. With no data at all the PNG still
// gets written: a transparent canvas carrying the title and a "no data" note.
func Render(w io.Writer, def Definition, uniform, preferential []results.Record, opts Options) error {
	width, height := opts.size()
	series, minX, maxX := buildSeries(def, uniform, preferential)
	if len(series) == 0 {
		logging.Warnf("[charts] %s: no data points, writing empty chart", def.Name)
		if err := png.Encode(w, noData(width, height, def.Title)); err != nil {
			return fmt.Errorf("encode %s: %w", def.Name, err)
		}
		return nil
	}

	ch := newChart(def, series, minX, maxX, width, height)
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s: %w", def.Name, err)
	}
	return nil
}

// newChart lays out one chart: fixed y range, whole-number node ticks,
// transparent fills and a top-left legend.
func newChart(def Definition, series []chart.Series, minX, maxX float64, width, height int) *chart.Chart {
	if minX == maxX {
		// go-chart needs a non-zero x span
		minX, maxX = minX-1, maxX+1
	}
	yTicks := []chart.Tick{}
	for _, t := range niceTicks(0, def.YMax, 6) {
		if t.Value <= def.YMax {
			yTicks = append(yTicks, t)
		}
	}
	ch := &chart.Chart{
		Title:  def.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: chart.ColorTransparent,
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: chart.ColorTransparent},
		XAxis: chart.XAxis{
			Name:           "# nodes",
			ValueFormatter: nodeFormatter,
			Range:          &chart.ContinuousRange{Min: minX, Max: maxX},
			Ticks:          nodeTicks(minX, maxX),
		},
		YAxis: chart.YAxis{
			Name:  "ms",
			Range: &chart.ContinuousRange{Min: 0, Max: def.YMax},
			Ticks: yTicks,
		},
		Series: series,
	}
	// chart.Legend sits in the top-left corner of the plot area.
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}

// WriteAll partitions records once and writes every chart to dir, in order.
// It returns the written paths.
func WriteAll(dir string, defs []Definition, records []results.Record, opts Options) ([]string, error) {
	defer logging.TimeTrack(time.Now(), "charts.WriteAll")
	if err := ensureDir(dir, opts.CreateDir); err != nil {
		return nil, err
	}
	uniform, preferential := results.Partition(records)
	logging.Infof("[charts] %d uniform and %d primary/secondary records", len(uniform), len(preferential))

	paths := make([]string, 0, len(defs))
	for _, def := range defs {
		var buf bytes.Buffer
		if err := Render(&buf, def, uniform, preferential, opts); err != nil {
			return paths, err
		}
		outPath := filepath.Join(dir, def.FileName())
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", outPath, err)
		}
		logging.Infof("[charts] wrote %s", outPath)
		paths = append(paths, outPath)
	}
	return paths, nil
}

func ensureDir(dir string, create bool) error {
	st, err := os.Stat(dir)
	switch {
	case err == nil && !st.IsDir():
		return fmt.Errorf("output path %s is not a directory", dir)
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist) && create:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("output dir %s: %w", dir, err)
	}
}
