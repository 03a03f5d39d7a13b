package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dmca/internal/export"
	"dmca/internal/output"
	"dmca/internal/version"
)

var (
	// exportNameFlag is the archive base name
	exportNameFlag string
	// exportNoCompressFlag disables gzip compression for this export
	exportNoCompressFlag bool
)

var exportCmd = &cobra.Command{
	Use:   "export <summaries.json> <commits.json> [dir]",
	Short: "Cluster and write the graph as an archive with a manifest",
	Long: `Export runs the full clustering pipeline and writes the cluster graph into
an archive directory alongside a manifest.toml describing the run. The graph
is gzip-compressed unless --no-compress is given or export.compress is
disabled in config.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportNameFlag, "name", "graph", "Base name for the exported graph file")
	exportCmd.Flags().BoolVar(&exportNoCompressFlag, "no-compress", false, "Write the graph uncompressed")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 3 {
		dir = args[2]
	}

	result, err := runPipeline(cfg, logger, args[0], args[1])
	if err != nil {
		return err
	}

	graph := output.BuildGraph(result.Engine.TopLevelClusters(), cfg.Clustering.DisplayScale)
	encoded, err := output.EncodeGraph(graph)
	if err != nil {
		return err
	}

	compress := cfg.Export.Compress && !exportNoCompressFlag

	manifest := export.Manifest{
		Tool:        "dmca",
		Version:     version.Version,
		Summaries:   result.EngineStats.TotalSummaries,
		Commits:     result.EngineStats.TotalCommits,
		Definitions: result.EngineStats.TotalDefinitions,
		Clusters:    result.EngineStats.TotalClusters,
		Fingerprint: result.Fingerprint,
	}

	archive, err := export.NewExporter(logger).Write(dir, exportNameFlag, encoded, manifest, compress)
	if err != nil {
		return err
	}

	persistRun(cfg, logger, result)

	fmt.Fprintf(cmd.OutOrStdout(), "Graph exported to %s\n", archive.DataPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Manifest written to %s\n", archive.ManifestPath)
	return nil
}
