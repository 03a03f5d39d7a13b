package engine

import "dmca/internal/model"

// Cluster runs the full clustering pipeline in its fixed pass order:
// namespace decomposition, alias unification, chronic and occurrence
// banding, resonance and dissonance hub aggregation, then file contexts.
// Existing clusters are discarded first. Before statistics exist the call
// is a no-op, matching the pipeline state machine.
func (e *Engine) Cluster() {
	if e.state < StateStatsComputed {
		e.logger.Warn("clustering skipped: no statistics available", map[string]interface{}{
			"state": int(e.state),
		})
		return
	}

	e.clusters = nil
	e.contexts = nil

	e.decomposeNamespaces()
	e.unifyAliases()

	if e.defs.Len() >= 2 {
		e.bandCluster(model.ClusterChronic, func(d *model.Definition) float64 {
			return d.ChronicPoint
		})
		e.bandCluster(model.ClusterOccurrence, func(d *model.Definition) float64 {
			return d.CommitFrequency
		})
	}
	e.finalizeClusterFrequency()

	e.resonanceHubs()
	e.dissonanceHubs()
	e.clusterFiles()

	e.state = StateClustered

	e.logger.Info("clustering complete", map[string]interface{}{
		"definitions": e.defs.Len(),
		"clusters":    len(e.clusters),
	})
}

// TopLevelClusters returns the clusters that are not members of any other
// cluster, in build order. This is the visualizer's entry set: nested
// members are reachable through their parents.
func (e *Engine) TopLevelClusters() []*model.Cluster {
	nested := make(map[*model.Cluster]bool)
	for _, c := range e.clusters {
		markNested(c, nested)
	}

	var top []*model.Cluster
	for _, c := range e.clusters {
		if !nested[c] {
			top = append(top, c)
		}
	}
	return top
}

func markNested(c *model.Cluster, nested map[*model.Cluster]bool) {
	for _, child := range c.Children() {
		if !nested[child] {
			nested[child] = true
			markNested(child, nested)
		}
	}
}
