// Package config resolves input/output locations from a .env file and the
// environment, falling back to the fixed report locations.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mooso/pheromessage/src/logging"
)

const (
	DefaultResultsPath = "results/lset"
	DefaultOutDir      = "docs/images"
	DefaultEnvFile     = ".env"
	DefaultLogLevel    = "info"

	EnvResults  = "GOSSIPCHARTS_RESULTS"
	EnvOutDir   = "GOSSIPCHARTS_OUT_DIR"
	EnvLayout   = "GOSSIPCHARTS_LAYOUT"
	EnvLogLevel = "GOSSIPCHARTS_LOG_LEVEL"
)

type Config struct {
	ResultsPath string
	OutDir      string
	// LayoutPath is optional; empty means the default charts.
	LayoutPath string
	LogLevel   string
}

// Load reads envFile (a missing file is fine) and then the environment.
// Variables already set in the process environment win over the file.
// The result is not validated; callers layer their overrides and then
// call Validate.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			logging.Debugf("[config] skipping %s: %v", envFile, err)
		}
	}

	cfg := &Config{
		ResultsPath: getenv(EnvResults, DefaultResultsPath),
		OutDir:      getenv(EnvOutDir, DefaultOutDir),
		LayoutPath:  strings.TrimSpace(os.Getenv(EnvLayout)),
		LogLevel:    getenv(EnvLogLevel, DefaultLogLevel),
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ResultsPath) == "" {
		return fmt.Errorf("results path is empty")
	}
	if strings.TrimSpace(c.OutDir) == "" {
		return fmt.Errorf("output dir is empty")
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level %q (debug|info|warn|error)", c.LogLevel)
	}
	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
