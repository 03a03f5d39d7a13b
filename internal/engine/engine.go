// Package engine implements the abstract clustering pipeline: ingestion of
// summary and commit streams into a weighted symbol graph, per-symbol
// temporal statistics, and the multi-pass clustering that groups
// definitions into chronic bands, occurrence bands, hubs, namespaces, and
// file contexts.
package engine

import (
	"dmca/internal/errors"
	"dmca/internal/logging"
	"dmca/internal/model"
)

// State tracks pipeline progress. Transitions are linear; Clear returns to
// StateEmpty and re-ingestion is only permitted from there.
type State int

const (
	// StateEmpty is the initial state with no data loaded
	StateEmpty State = iota
	// StateIngestedSummaries means the summary stream has been ingested
	StateIngestedSummaries
	// StateStatsComputed means per-definition statistics are available
	StateStatsComputed
	// StateIngestedCommits means the commit stream has been linked
	StateIngestedCommits
	// StateFilesAttributed means file definitions and fileVector exist
	StateFilesAttributed
	// StateClustered means the full clustering pipeline has run
	StateClustered
)

// Options tune pipeline behavior.
type Options struct {
	// FlushFinal controls whether the band and hub walks append the final
	// sorted element and emit the trailing cluster. The ancestor pipeline
	// dropped both; leaving this on is the conservative default.
	FlushFinal bool
}

// DefaultOptions returns the conservative pipeline options.
func DefaultOptions() Options {
	return Options{FlushFinal: true}
}

// Engine is the single-threaded batch clustering engine. It owns all graph
// state for the lifetime of a run; separate engines share nothing.
type Engine struct {
	opts   Options
	logger *logging.Logger
	state  State

	summaries []model.Summary
	commits   []model.Commit

	defs  *symbolTable
	files *symbolTable

	fileDefs []*model.Definition
	buckets  []*fileBucket

	clusters []*model.Cluster
	contexts []*model.Cluster
}

// New creates an engine. A nil logger is replaced with a discard logger.
func New(opts Options, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		opts:   opts,
		logger: logger,
		defs:   newSymbolTable(),
		files:  newSymbolTable(),
	}
}

// State returns the current pipeline state.
func (e *Engine) State() State { return e.state }

// Clear drops all graph state and returns the engine to StateEmpty.
func (e *Engine) Clear() {
	e.summaries = nil
	e.commits = nil
	e.defs.Clear()
	e.files.Clear()
	e.fileDefs = nil
	e.buckets = nil
	e.clusters = nil
	e.contexts = nil
	e.state = StateEmpty
}

// Summaries returns the ingested summary stream.
func (e *Engine) Summaries() []model.Summary { return e.summaries }

// Commits returns the linked commit stream.
func (e *Engine) Commits() []model.Commit { return e.commits }

// Definitions returns the symbol definitions sorted by name.
func (e *Engine) Definitions() []*model.Definition {
	return e.defs.SortedByName()
}

// Definition returns the definition for an exact symbol, or nil.
func (e *Engine) Definition(symbol string) *model.Definition {
	return e.defs.Get(symbol)
}

// FileDefinitions returns the file-path definitions on the sorted file axis.
func (e *Engine) FileDefinitions() []*model.Definition { return e.fileDefs }

// Clusters returns the global cluster list in build order.
func (e *Engine) Clusters() []*model.Cluster { return e.clusters }

// ClustersByType returns the clusters carrying the given type tag.
func (e *Engine) ClustersByType(t model.ClusterType) []*model.Cluster {
	var out []*model.Cluster
	for _, c := range e.clusters {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// FindSummaryByID returns the summary with the given hash identifier.
func (e *Engine) FindSummaryByID(id string) (*model.Summary, error) {
	for i := range e.summaries {
		if e.summaries[i].ID == id {
			return &e.summaries[i], nil
		}
	}
	return nil, errors.NotFoundError("summary", id)
}

// FindCommitByID returns the commit with the given hash identifier.
func (e *Engine) FindCommitByID(id string) (*model.Commit, error) {
	for i := range e.commits {
		if e.commits[i].ID == id {
			return &e.commits[i], nil
		}
	}
	return nil, errors.NotFoundError("commit", id)
}

// Stats summarizes the graph after ingestion. Every field is zero on an
// empty or cleared engine.
type Stats struct {
	TotalDefinitions                int     `json:"totalDefinitions"`
	TotalSummaries                  int     `json:"totalSummaries"`
	TotalCommits                    int     `json:"totalCommits"`
	TotalConnections                int     `json:"totalConnections"`
	TotalClusters                   int     `json:"totalClusters"`
	AverageFrequency                float64 `json:"averageFrequency"`
	AverageChronicPoint             float64 `json:"averageChronicPoint"`
	AverageConnectionsPerDefinition float64 `json:"averageConnectionsPerDefinition"`
}

// GetStatistics computes the graph summary over the definition table.
func (e *Engine) GetStatistics() Stats {
	stats := Stats{
		TotalDefinitions: e.defs.Len(),
		TotalSummaries:   len(e.summaries),
		TotalCommits:     len(e.commits),
		TotalClusters:    len(e.clusters),
	}

	var sumFrequency, sumChronic float64
	for _, def := range e.defs.SortedByName() {
		stats.TotalConnections += len(def.Connections)
		sumFrequency += def.CommitFrequency
		sumChronic += def.ChronicPoint
	}

	if stats.TotalDefinitions > 0 {
		n := float64(stats.TotalDefinitions)
		stats.AverageFrequency = sumFrequency / n
		stats.AverageChronicPoint = sumChronic / n
		stats.AverageConnectionsPerDefinition = float64(stats.TotalConnections) / n
	}
	return stats
}
