package engine

import "dmca/internal/model"

// computeStatistics derives CommitFrequency and ChronicPoint for every
// definition in both symbol tables. It runs after summary ingestion, again
// after file attribution adds the synthetic file definitions, and again
// after alias unification merges connection lists.
func (e *Engine) computeStatistics() {
	total := len(e.summaries)
	if total == 0 {
		return
	}

	maxWeight := maxPossibleWeight(total)

	for _, def := range e.defs.SortedByName() {
		computeDefinitionStats(def, total, maxWeight)
	}
	for _, def := range e.files.SortedByName() {
		computeDefinitionStats(def, total, maxWeight)
	}
}

// maxPossibleWeight is the weight sum of a definition mentioned once in
// every summary. It normalizes CommitFrequency into [0, 1].
func maxPossibleWeight(total int) float64 {
	var sum float64
	for i := 0; i < total; i++ {
		sum += connectionWeight(i, total)
	}
	return sum
}

func computeDefinitionStats(def *model.Definition, total int, maxWeight float64) {
	def.CommitFrequency = 0
	def.ChronicPoint = 0

	if len(def.Connections) == 0 {
		return
	}

	sumWeight := def.TotalWeight()
	if maxWeight > 0 {
		def.CommitFrequency = sumWeight / maxWeight
		if def.CommitFrequency > 1 {
			// Alias merges keep duplicate-index entries as distinct list
			// members, which can push the weight sum past the single-mention
			// maximum. Clamp so the feature stays a valid vector component.
			def.CommitFrequency = 1
		}
	}

	var weightedSum float64
	for _, conn := range def.Connections {
		normalizedTime := 0.0
		if total > 1 {
			normalizedTime = float64(conn.Index) / float64(total-1)
		}
		weightedSum += normalizedTime * conn.Weight
	}
	if sumWeight > 0 {
		def.ChronicPoint = weightedSum / sumWeight
	}
}
