package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dmca/internal/storage"
)

// runsLimitFlag caps how many persisted runs are listed
var runsLimitFlag int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted clustering runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimitFlag, "limit", 20, "Maximum number of runs to list")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	if !cfg.Storage.Enabled {
		return fmt.Errorf("run storage is disabled; enable storage.enabled in config")
	}

	db, err := storage.Open(cfg.Storage.Path, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(runsLimitFlag)
	if err != nil {
		return err
	}

	rendered, err := FormatResponse(&runsReport{Runs: runs}, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
