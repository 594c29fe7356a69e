// Package layout reads optional YAML overrides for the rendered charts.
//
// A layout can retitle, rescale or rename the mean, p50 and p90 charts. It
// cannot add or remove charts.
package layout

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mooso/pheromessage/src/charts"
	"github.com/mooso/pheromessage/src/results"
)

// Layout is the YAML document root.
type Layout struct {
	Charts []ChartOverride `yaml:"charts"`
}

// ChartOverride changes one default chart, selected by metric.
type ChartOverride struct {
	Metric string  `yaml:"metric"`
	Name   string  `yaml:"name,omitempty"`
	Title  string  `yaml:"title,omitempty"`
	YMax   float64 `yaml:"y_max,omitempty"`
}

// LoadFromFile reads and validates a layout file.
func LoadFromFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a layout document.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout YAML: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks metrics, names and y ranges.
func (l *Layout) Validate() error {
	seen := map[results.Metric]bool{}
	names := map[string]bool{}
	for i, c := range l.Charts {
		m, err := results.ParseMetric(c.Metric)
		if err != nil {
			return fmt.Errorf("chart at index %d: %w", i, err)
		}
		if !hasDefault(m) {
			return fmt.Errorf("chart at index %d: no %s chart to override", i, m)
		}
		if seen[m] {
			return fmt.Errorf("chart at index %d: duplicate metric %s", i, m)
		}
		seen[m] = true
		if c.YMax < 0 {
			return fmt.Errorf("chart %s: y_max must be positive, got %v", m, c.YMax)
		}
		if c.Name != "" {
			if strings.ContainsAny(c.Name, `/\`) || c.Name == "." || c.Name == ".." {
				return fmt.Errorf("chart %s: name %q must be a plain file stem", m, c.Name)
			}
			if names[c.Name] {
				return fmt.Errorf("chart %s: duplicate name %q", m, c.Name)
			}
			names[c.Name] = true
		}
	}
	return nil
}

func hasDefault(m results.Metric) bool {
	for _, d := range charts.DefaultDefinitions() {
		if d.Metric == m {
			return true
		}
	}
	return false
}

// Apply returns defs with overrides merged in by metric. The result has the
// same length and order as defs. A nil layout returns defs unchanged.
func (l *Layout) Apply(defs []charts.Definition) ([]charts.Definition, error) {
	out := make([]charts.Definition, len(defs))
	copy(out, defs)
	if l == nil {
		return out, nil
	}
	for _, c := range l.Charts {
		m, err := results.ParseMetric(c.Metric)
		if err != nil {
			return nil, err
		}
		for i := range out {
			if out[i].Metric != m {
				continue
			}
			if c.Name != "" {
				out[i].Name = c.Name
			}
			if c.Title != "" {
				out[i].Title = c.Title
			}
			if c.YMax > 0 {
				out[i].YMax = c.YMax
			}
		}
	}
	seen := map[string]bool{}
	for _, d := range out {
		if seen[d.Name] {
			return nil, fmt.Errorf("layout makes two charts share the name %q", d.Name)
		}
		seen[d.Name] = true
	}
	return out, nil
}
