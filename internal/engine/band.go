package engine

import (
	"math"
	"sort"

	"dmca/internal/model"
)

// bandCluster runs the one-dimensional adaptive band walk over a scalar
// feature: definitions are sorted by the scalar, the mean adjacent gap
// becomes the split threshold, and runs of definitions closer than the
// threshold form one cluster. Every membership bumps the definition's
// cluster counter, which finalizeClusterFrequency later normalizes.
func (e *Engine) bandCluster(ctype model.ClusterType, scalar func(*model.Definition) float64) {
	defs := e.defs.SortedByName()
	if len(defs) < 2 {
		return
	}
	sort.SliceStable(defs, func(i, j int) bool {
		return scalar(defs[i]) < scalar(defs[j])
	})

	threshold := averageAdjacentGap(defs, scalar)

	current := model.NewCluster(ctype)
	for i := 0; i < len(defs)-1; i++ {
		gap := math.Abs(scalar(defs[i+1]) - scalar(defs[i]))

		if gap > threshold {
			if current.Size() > 0 {
				e.clusters = append(e.clusters, current)
			}
			current = model.NewCluster(ctype)
			continue
		}

		current.Add(defs[i])
		defs[i].ClusterFrequency++
		if gap > current.Radius {
			current.Radius = gap
		}
	}

	if e.opts.FlushFinal {
		last := defs[len(defs)-1]
		current.Add(last)
		last.ClusterFrequency++
		e.clusters = append(e.clusters, current)
	}
}

// averageAdjacentGap is the mean absolute difference between neighboring
// scalars in the sorted definition list.
func averageAdjacentGap(defs []*model.Definition, scalar func(*model.Definition) float64) float64 {
	if len(defs) < 2 {
		return 0
	}
	var total float64
	for i := 0; i < len(defs)-1; i++ {
		total += math.Abs(scalar(defs[i+1]) - scalar(defs[i]))
	}
	return total / float64(len(defs)-1)
}

// finalizeClusterFrequency turns the raw band-membership counters into a
// [0, 1] feature: each definition's count of containing band clusters over
// the total band cluster count. Definitions outside every band stay at 0.
func (e *Engine) finalizeClusterFrequency() {
	var bandClusters int
	for _, c := range e.clusters {
		if c.Type == model.ClusterChronic || c.Type == model.ClusterOccurrence {
			bandClusters++
		}
	}

	for _, def := range e.defs.SortedByName() {
		if bandClusters == 0 {
			def.ClusterFrequency = 0
			continue
		}
		def.ClusterFrequency /= float64(bandClusters)
		if def.ClusterFrequency > 1 {
			def.ClusterFrequency = 1
		}
	}
}
