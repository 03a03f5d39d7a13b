package main

import (
	"time"

	"dmca/internal/config"
	"dmca/internal/engine"
	"dmca/internal/filter"
	"dmca/internal/logging"
	"dmca/internal/model"
	"dmca/internal/parser"
	"dmca/internal/storage"
)

// pipelineResult bundles everything one full clustering run produced.
type pipelineResult struct {
	Engine      *engine.Engine
	FilterStats filter.Stats
	EngineStats engine.Stats
	Metrics     engine.Metrics
	ParseTime   time.Duration
	Fingerprint string
}

// runPipeline loads, filters, ingests, and clusters the input streams.
// commitsPath may be empty, in which case file attribution is skipped.
func runPipeline(cfg *config.Config, logger *logging.Logger, summariesPath, commitsPath string) (*pipelineResult, error) {
	parseStart := time.Now()

	summaries, err := parser.LoadSummaries(summariesPath)
	if err != nil {
		return nil, err
	}

	var commits []model.Commit
	if commitsPath != "" {
		commits, err = parser.LoadCommits(commitsPath)
		if err != nil {
			return nil, err
		}
	}
	parseTime := time.Since(parseStart)

	f := filter.New()
	if cfg.Filter.ProfilePath != "" {
		f, err = filter.LoadProfile(cfg.Filter.ProfilePath)
		if err != nil {
			return nil, err
		}
	}
	f.Apply(&filter.Profile{MinLength: cfg.Filter.MinLength})
	filterStats := f.FilterSummaries(summaries)

	opts := engine.DefaultOptions()
	opts.FlushFinal = cfg.Clustering.FlushFinal
	if strictCompatFlag {
		opts.FlushFinal = false
	}

	eng := engine.New(opts, logger)
	eng.ProcessSummaries(summaries)
	if len(commits) > 0 {
		eng.ProcessCommits(commits)
	}
	eng.Cluster()

	summaryIDs := make([]string, 0, len(summaries))
	for _, s := range summaries {
		summaryIDs = append(summaryIDs, s.ID)
	}
	commitIDs := make([]string, 0, len(commits))
	for _, c := range commits {
		commitIDs = append(commitIDs, c.ID)
	}

	return &pipelineResult{
		Engine:      eng,
		FilterStats: filterStats,
		EngineStats: eng.GetStatistics(),
		Metrics:     eng.ComputeMetrics(),
		ParseTime:   parseTime,
		Fingerprint: storage.Fingerprint(summaryIDs, commitIDs),
	}, nil
}

// persistRun saves the run when storage is enabled. Failures are logged but
// never abort the command.
func persistRun(cfg *config.Config, logger *logging.Logger, result *pipelineResult) {
	if !cfg.Storage.Enabled {
		return
	}

	db, err := storage.Open(cfg.Storage.Path, logger)
	if err != nil {
		logger.Warn("run not persisted: database unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer db.Close()

	run := &storage.RunRecord{
		SummaryCount:    result.EngineStats.TotalSummaries,
		CommitCount:     result.EngineStats.TotalCommits,
		DefinitionCount: result.EngineStats.TotalDefinitions,
		ClusterCount:    result.EngineStats.TotalClusters,
		EntropyGain:     result.Metrics.EntropyGain,
		VarianceGain:    result.Metrics.VarianceGain,
		Silhouette:      result.Metrics.Silhouette,
		AvgClusterSize:  result.Metrics.AverageClusterSize,
		Fingerprint:     result.Fingerprint,
	}

	clusters := make([]storage.RunCluster, 0, len(result.Engine.Clusters()))
	for _, c := range result.Engine.Clusters() {
		clusters = append(clusters, storage.RunCluster{
			Type:        string(c.Type),
			Radius:      c.Radius,
			MemberCount: c.Size(),
		})
	}

	if err := db.SaveRun(run, clusters); err != nil {
		logger.Warn("run not persisted", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Debug("run persisted", map[string]interface{}{
		"run_id": run.ID,
	})
}
