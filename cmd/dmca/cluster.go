package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dmca/internal/output"
	"dmca/internal/version"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster <summaries.json> <commits.json> [output.json]",
	Short: "Build the memory graph and emit the cluster graph",
	Long: `Cluster loads commit summaries and raw commit diffs, builds the semantic
memory graph, runs band clustering across all dimensions, and writes the
resulting cluster graph as JSON. When no output path is given the graph is
written to stdout and the run report to stderr.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runCluster,
}

func init() {
	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	summariesPath := args[0]
	commitsPath := args[1]
	outputPath := ""
	if len(args) == 3 {
		outputPath = args[2]
	}

	result, err := runPipeline(cfg, logger, summariesPath, commitsPath)
	if err != nil {
		return err
	}

	graph := output.BuildGraph(result.Engine.TopLevelClusters(), cfg.Clustering.DisplayScale)
	encoded, err := output.EncodeGraph(graph)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
	} else {
		if _, err := cmd.OutOrStdout().Write(encoded); err != nil {
			return err
		}
	}

	persistRun(cfg, logger, result)

	report := &runReport{
		Version:     version.Version,
		ParseMs:     float64(result.ParseTime.Microseconds()) / 1000,
		Filter:      result.FilterStats,
		Stats:       result.EngineStats,
		Metrics:     result.Metrics,
		Fingerprint: result.Fingerprint,
		Output:      outputPath,
	}

	rendered, err := FormatResponse(report, OutputFormat(formatFlag))
	if err != nil {
		return err
	}

	// Keep stdout clean for the graph when it was not written to a file.
	dest := cmd.OutOrStdout()
	if outputPath == "" {
		dest = cmd.ErrOrStderr()
	}
	fmt.Fprintln(dest, rendered)
	return nil
}
