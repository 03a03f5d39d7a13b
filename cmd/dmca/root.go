package main

import (
	"github.com/spf13/cobra"

	"dmca/internal/config"
	"dmca/internal/logging"
	"dmca/internal/version"
)

var (
	// formatFlag is the CLI --format flag value
	formatFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
	// strictCompatFlag drops the trailing band cluster and its final element
	strictCompatFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "dmca",
	Short: "DMCA - Dynamic Memory Cluster Analyzer",
	Long: `DMCA (Dynamic Memory Cluster Analyzer) builds a semantic memory graph from
commit summaries and raw commit diffs, clusters the tracked definitions along
temporal, occurrence, resonance, and file dimensions, and emits a cluster
graph for the external visualizer.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate("DMCA version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Output format: human, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&strictCompatFlag, "strict-compat", false,
		"Match legacy band clustering: drop the final element and trailing cluster")
}

// loadSetup resolves config and builds the logger the subcommands share.
func loadSetup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(level),
	})
	return cfg, logger, nil
}
