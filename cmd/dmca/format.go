package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"dmca/internal/engine"
	"dmca/internal/filter"
	"dmca/internal/output"
	"dmca/internal/storage"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

// runReport is the per-run summary the cluster and stats commands print.
type runReport struct {
	Version     string         `json:"version" yaml:"version"`
	ParseMs     float64        `json:"parseMs" yaml:"parseMs"`
	Filter      filter.Stats   `json:"filter" yaml:"filter"`
	Stats       engine.Stats   `json:"stats" yaml:"stats"`
	Metrics     engine.Metrics `json:"metrics" yaml:"metrics"`
	Fingerprint string         `json:"fingerprint" yaml:"fingerprint"`
	Output      string         `json:"output,omitempty" yaml:"output,omitempty"`
}

// runsReport wraps the persisted run list for rendering.
type runsReport struct {
	Runs []storage.RunRecord `json:"runs" yaml:"runs"`
}

// FormatResponse renders a response in the requested format.
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *runReport:
		return formatRunHuman(v)
	case *runsReport:
		return formatRunsHuman(v)
	default:
		return formatJSON(resp)
	}
}

func formatRunHuman(r *runReport) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "DMCA v%s\n", r.Version)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	fmt.Fprintf(&b, "Parsing: %sms\n\n", output.FormatFloat(r.ParseMs))

	b.WriteString("Filter:\n")
	fmt.Fprintf(&b, "  Candidates: %d\n", r.Filter.TotalWords)
	fmt.Fprintf(&b, "  Filtered:   %d (%s%%)\n", r.Filter.FilteredWords,
		output.FormatFloat(r.Filter.FilterRatio*100))
	fmt.Fprintf(&b, "  Remaining:  %d\n\n", r.Filter.RemainingWords)

	b.WriteString("Graph:\n")
	fmt.Fprintf(&b, "  Definitions: %d\n", r.Stats.TotalDefinitions)
	fmt.Fprintf(&b, "  Summaries:   %d\n", r.Stats.TotalSummaries)
	fmt.Fprintf(&b, "  Commits:     %d\n", r.Stats.TotalCommits)
	fmt.Fprintf(&b, "  Connections: %d\n", r.Stats.TotalConnections)
	fmt.Fprintf(&b, "  Clusters:    %d\n", r.Stats.TotalClusters)
	fmt.Fprintf(&b, "  Avg frequency:     %s\n", output.FormatFloat(r.Stats.AverageFrequency))
	fmt.Fprintf(&b, "  Avg chronic point: %s\n", output.FormatFloat(r.Stats.AverageChronicPoint))
	fmt.Fprintf(&b, "  Avg connections:   %s\n\n", output.FormatFloat(r.Stats.AverageConnectionsPerDefinition))

	b.WriteString("Metrics:\n")
	fmt.Fprintf(&b, "  Entropy gain:     %s\n", output.FormatFloat(r.Metrics.EntropyGain))
	fmt.Fprintf(&b, "  Variance gain:    %s\n", output.FormatFloat(r.Metrics.VarianceGain))
	fmt.Fprintf(&b, "  Silhouette:       %s\n", output.FormatFloat(r.Metrics.Silhouette))
	fmt.Fprintf(&b, "  Avg cluster size: %s\n\n", output.FormatFloat(r.Metrics.AverageClusterSize))

	fmt.Fprintf(&b, "Fingerprint: %s\n", shortFingerprint(r.Fingerprint))
	if r.Output != "" {
		fmt.Fprintf(&b, "Graph written to %s\n", r.Output)
	}

	return b.String(), nil
}

func formatRunsHuman(r *runsReport) (string, error) {
	if len(r.Runs) == 0 {
		return "No runs recorded.\n", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d run(s), newest first:\n\n", len(r.Runs))

	for _, run := range r.Runs {
		fmt.Fprintf(&b, "%s  %s\n", run.CreatedAt.Format(time.RFC3339), run.ID)
		fmt.Fprintf(&b, "  summaries=%d commits=%d definitions=%d clusters=%d\n",
			run.SummaryCount, run.CommitCount, run.DefinitionCount, run.ClusterCount)
		fmt.Fprintf(&b, "  entropy=%s variance=%s silhouette=%s avg_size=%s\n",
			output.FormatFloat(run.EntropyGain),
			output.FormatFloat(run.VarianceGain),
			output.FormatFloat(run.Silhouette),
			output.FormatFloat(run.AvgClusterSize))
		fmt.Fprintf(&b, "  fingerprint=%s\n\n", shortFingerprint(run.Fingerprint))
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
