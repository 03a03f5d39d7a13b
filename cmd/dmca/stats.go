package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dmca/internal/version"
)

var statsCmd = &cobra.Command{
	Use:   "stats <summaries.json> [commits.json]",
	Short: "Run the clustering pipeline and report statistics without emitting a graph",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	commitsPath := ""
	if len(args) == 2 {
		commitsPath = args[1]
	}

	result, err := runPipeline(cfg, logger, args[0], commitsPath)
	if err != nil {
		return err
	}

	persistRun(cfg, logger, result)

	report := &runReport{
		Version:     version.Version,
		ParseMs:     float64(result.ParseTime.Microseconds()) / 1000,
		Filter:      result.FilterStats,
		Stats:       result.EngineStats,
		Metrics:     result.Metrics,
		Fingerprint: result.Fingerprint,
	}

	rendered, err := FormatResponse(report, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
