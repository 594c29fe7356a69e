package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mooso/pheromessage/src/charts"
	"github.com/mooso/pheromessage/src/config"
	"github.com/mooso/pheromessage/src/layout"
	"github.com/mooso/pheromessage/src/logging"
	"github.com/mooso/pheromessage/src/report"
	"github.com/mooso/pheromessage/src/results"
)

// globalFlags are shared by every subcommand; empty values fall back to config.
type globalFlags struct {
	envFile     string
	resultsPath string
	outDir      string
	layoutPath  string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var (
		g         globalFlags
		cfg       *config.Config
		createDir bool
		width     int
		height    int
	)

	root := &cobra.Command{
		Use:   "gossipcharts",
		Short: "Render gossip time-to-delivery charts",
		Long: `gossipcharts reads gossip experiment results (one JSON object per line)
and renders mean, p50 and p90 time-to-delivery charts comparing uniform
delivery with primary/secondary delivery.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = resolveConfig(g)
			if err != nil {
				return err
			}
			logging.SetLogLevel(cfg.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := charts.Options{Width: width, Height: height, CreateDir: createDir}
			paths, err := renderCharts(cfg, opts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.envFile, "env-file", config.DefaultEnvFile,
		"Optional .env file with GOSSIPCHARTS_* settings")
	pf.StringVar(&g.resultsPath, "results", "",
		"Results file, one JSON record per line (default "+config.DefaultResultsPath+")")
	pf.StringVar(&g.outDir, "out-dir", "",
		"Directory for the PNG charts (default "+config.DefaultOutDir+")")
	pf.StringVar(&g.layoutPath, "layout", "",
		"Optional YAML file overriding chart titles, y ranges and names")
	pf.StringVar(&g.logLevel, "log-level", "",
		"Log level (debug|info|warn|error)")

	flags := root.Flags()
	flags.BoolVar(&createDir, "create-dir", false,
		"Create the output directory if it does not exist")
	flags.IntVar(&width, "width", charts.DefaultOptions().Width, "Chart width in pixels")
	flags.IntVar(&height, "height", charts.DefaultOptions().Height, "Chart height in pixels")

	root.AddCommand(newSummaryCmd(&cfg), newInspectCmd(&cfg))
	return root
}

func newSummaryCmd(cfg **config.Config) *cobra.Command {
	var metrics []string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a markdown summary of the results with trend fits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ms := make([]results.Metric, 0, len(metrics))
			for _, s := range metrics {
				m, err := results.ParseMetric(s)
				if err != nil {
					return err
				}
				ms = append(ms, m)
			}
			recs, err := results.Load((*cfg).ResultsPath)
			if err != nil {
				return err
			}
			return report.WriteSummary(cmd.OutOrStdout(), recs, ms)
		},
	}
	cmd.Flags().StringSliceVar(&metrics, "metrics", []string{"mean", "p50", "p90"},
		"Metrics to summarize (mean, p50, p90, p99)")
	return cmd
}

func newInspectCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print record counts per partition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs, err := results.Load((*cfg).ResultsPath)
			if err != nil {
				return err
			}
			return report.WriteInspection(cmd.OutOrStdout(), recs)
		},
	}
}

// resolveConfig layers flags over env/.env over defaults.
func resolveConfig(g globalFlags) (*config.Config, error) {
	cfg, err := config.Load(g.envFile)
	if err != nil {
		return nil, err
	}
	if g.resultsPath != "" {
		cfg.ResultsPath = g.resultsPath
	}
	if g.outDir != "" {
		cfg.OutDir = g.outDir
	}
	if g.layoutPath != "" {
		cfg.LayoutPath = g.layoutPath
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// renderCharts is the load, partition, plot and export pipeline.
func renderCharts(cfg *config.Config, opts charts.Options) ([]string, error) {
	defs := charts.DefaultDefinitions()
	if cfg.LayoutPath != "" {
		l, err := layout.LoadFromFile(cfg.LayoutPath)
		if err != nil {
			return nil, err
		}
		if defs, err = l.Apply(defs); err != nil {
			return nil, err
		}
		logging.Debugf("[main] applied layout %s", cfg.LayoutPath)
	}

	recs, err := results.Load(cfg.ResultsPath)
	if err != nil {
		return nil, err
	}
	return charts.WriteAll(cfg.OutDir, defs, recs, opts)
}
