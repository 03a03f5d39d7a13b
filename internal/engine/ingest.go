package engine

import "dmca/internal/model"

// ProcessSummaries ingests the chronological summary stream, building the
// definition graph and computing per-definition statistics. Any previous
// run state is discarded first. Ingestion never fails: empty symbol names
// are skipped silently.
func (e *Engine) ProcessSummaries(summaries []model.Summary) {
	e.Clear()

	e.summaries = make([]model.Summary, len(summaries))
	copy(e.summaries, summaries)

	total := len(e.summaries)
	for i := range e.summaries {
		e.summaries[i].TimeIndex = i
		e.ingestSummary(&e.summaries[i], i, total)
	}
	e.state = StateIngestedSummaries

	e.computeStatistics()
	e.state = StateStatsComputed

	e.logger.Debug("ingested summary stream", map[string]interface{}{
		"summaries":   total,
		"definitions": e.defs.Len(),
	})
}

// ingestSummary records a connection from every symbol the summary mentions
// back to the summary's time index. A symbol present in both definition
// lists accumulates weight twice.
func (e *Engine) ingestSummary(s *model.Summary, timeIndex, total int) {
	weight := connectionWeight(timeIndex, total)

	for _, symbol := range s.CtagDefinitions {
		if symbol != "" {
			e.defs.GetOrCreate(symbol).AddConnection(timeIndex, weight)
		}
	}
	for _, symbol := range s.RegexDefinitions {
		if symbol != "" {
			e.defs.GetOrCreate(symbol).AddConnection(timeIndex, weight)
		}
	}
}

// connectionWeight rises linearly with the time index, from 1/total for the
// oldest summary to 1.0 for the newest. No summary is weighted zero.
func connectionWeight(timeIndex, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return float64(timeIndex+1) / float64(total)
}
