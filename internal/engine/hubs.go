package engine

import (
	"math"
	"sort"

	"dmca/internal/model"
)

// resonanceHubs groups clusters whose definitions resonate similarly with
// one another: each existing cluster is scored by the average pairwise dot
// product of its definitions' feature vectors, and the adaptive band walk
// over those scores emits RESONANCE_HUB clusters.
func (e *Engine) resonanceHubs() {
	snapshot := append([]*model.Cluster(nil), e.clusters...)
	e.aggregateClusters(model.ClusterResonanceHub, snapshot, clusterResonance)
}

// dissonanceHubs groups clusters spanning similar conceptual field sizes:
// the adaptive band walk runs over cluster radii. Because this pass runs
// after resonanceHubs, resonance hubs themselves can be aggregated.
func (e *Engine) dissonanceHubs() {
	snapshot := append([]*model.Cluster(nil), e.clusters...)
	e.aggregateClusters(model.ClusterDissonanceHub, snapshot, func(c *model.Cluster) float64 {
		return c.Radius
	})
}

// clusterResonance is the average pairwise raw dot product over a cluster's
// definitions. Clusters with fewer than two definitions score zero.
func clusterResonance(c *model.Cluster) float64 {
	defs := c.Definitions()
	if len(defs) < 2 {
		return 0
	}

	var sum float64
	var pairs int
	for i := 0; i < len(defs); i++ {
		for j := i + 1; j < len(defs); j++ {
			product, _ := DotProduct(defs[i].FeatureVector(), defs[j].FeatureVector())
			sum += product
			pairs++
		}
	}
	return sum / float64(pairs)
}

// aggregateClusters runs the adaptive-gap walk of the band clusterer with
// clusters as the data points, appending emitted hubs to the global list.
func (e *Engine) aggregateClusters(ctype model.ClusterType, members []*model.Cluster, scalar func(*model.Cluster) float64) {
	if len(members) < 2 {
		return
	}
	sort.SliceStable(members, func(i, j int) bool {
		return scalar(members[i]) < scalar(members[j])
	})

	var total float64
	for i := 0; i < len(members)-1; i++ {
		total += math.Abs(scalar(members[i+1]) - scalar(members[i]))
	}
	threshold := total / float64(len(members)-1)

	current := model.NewCluster(ctype)
	for i := 0; i < len(members)-1; i++ {
		gap := math.Abs(scalar(members[i+1]) - scalar(members[i]))

		if gap > threshold {
			if current.Size() > 0 {
				e.clusters = append(e.clusters, current)
			}
			current = model.NewCluster(ctype)
			continue
		}

		current.Add(members[i])
		if gap > current.Radius {
			current.Radius = gap
		}
	}

	if e.opts.FlushFinal {
		current.Add(members[len(members)-1])
		e.clusters = append(e.clusters, current)
	}
}
