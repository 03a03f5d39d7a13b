package engine

import (
	"math"
	"sort"
	"strings"
)

// Metrics bundles the clustering quality scores the caller queries after a
// run. Every score is zero before clustering.
type Metrics struct {
	EntropyGain        float64 `json:"entropyGain"`
	VarianceGain       float64 `json:"varianceGain"`
	Silhouette         float64 `json:"silhouette"`
	AverageClusterSize float64 `json:"averageClusterSize"`
}

// ComputeMetrics evaluates all quality scores for the current clustering.
func (e *Engine) ComputeMetrics() Metrics {
	return Metrics{
		EntropyGain:        e.EntropyGain(),
		VarianceGain:       e.VarianceGain(),
		Silhouette:         e.Silhouette(),
		AverageClusterSize: e.AverageClusterSize(),
	}
}

// definitionVectors returns the feature vectors of the name-sorted
// definition snapshot as plain slices.
func (e *Engine) definitionVectors() [][]float64 {
	defs := e.defs.SortedByName()
	vectors := make([][]float64, 0, len(defs))
	for _, def := range defs {
		v := def.FeatureVector()
		vectors = append(vectors, v[:])
	}
	return vectors
}

// squaredDistance reports the squared Euclidean distance between two
// vectors, or false when their dimensions disagree. Mismatched vectors are
// skipped by every metric rather than corrupting the result.
func squaredDistance(a, b []float64) (float64, bool) {
	if len(a) != len(b) {
		return 0, false
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, true
}

// meanPairwiseSpread is the mean pairwise squared distance within a vector
// set: the entropy proxy used by EntropyGain. Sets smaller than two score 0.
func meanPairwiseSpread(vectors [][]float64) float64 {
	var sum float64
	var pairs int
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			if d, ok := squaredDistance(vectors[i], vectors[j]); ok {
				sum += d
				pairs++
			}
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

// EntropyGain is the spread of the raw definition set minus the spread of
// the cluster vectors. Positive values mean clustering reduced spread.
func (e *Engine) EntropyGain() float64 {
	if len(e.clusters) == 0 {
		return 0
	}

	clusterVectors := make([][]float64, 0, len(e.clusters))
	for _, c := range e.clusters {
		v := c.FeatureVector()
		clusterVectors = append(clusterVectors, v[:])
	}

	return meanPairwiseSpread(e.definitionVectors()) - meanPairwiseSpread(clusterVectors)
}

// VarianceGain is 1 minus the ratio of intra-cluster variance to global
// definition variance. 1 means the clustering perfectly explains spread.
func (e *Engine) VarianceGain() float64 {
	vectors := e.definitionVectors()
	if len(vectors) == 0 || len(e.clusters) == 0 {
		return 0
	}

	centroid := meanVector(vectors)
	var definitionVariance float64
	var counted int
	for _, v := range vectors {
		if d, ok := squaredDistance(v, centroid); ok {
			definitionVariance += d
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	definitionVariance /= float64(counted)
	if definitionVariance == 0 {
		return 0
	}

	var intraSum float64
	var members int
	for _, c := range e.clusters {
		defs := c.Definitions()
		if len(defs) == 0 {
			continue
		}
		memberVectors := make([][]float64, 0, len(defs))
		for _, def := range defs {
			v := def.FeatureVector()
			memberVectors = append(memberVectors, v[:])
		}
		clusterCentroid := meanVector(memberVectors)
		for _, v := range memberVectors {
			if d, ok := squaredDistance(v, clusterCentroid); ok {
				intraSum += d
				members++
			}
		}
	}
	if members == 0 {
		return 0
	}

	return 1 - (intraSum/float64(members))/definitionVariance
}

func meanVector(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	mean := make([]float64, len(vectors[0]))
	var counted int
	for _, v := range vectors {
		if len(v) != len(mean) {
			continue
		}
		for i := range v {
			mean[i] += v[i]
		}
		counted++
	}
	if counted == 0 {
		return mean
	}
	for i := range mean {
		mean[i] /= float64(counted)
	}
	return mean
}

// Silhouette is the standard silhouette coefficient averaged over every
// definition belonging to a cluster of at least two definitions. The chronic
// and occurrence walks can emit clusters holding the same definition set;
// duplicate sets collapse into one group so a definition is never scored
// against a copy of its own cluster. Returns 0 when fewer than two distinct
// groups hold definitions.
func (e *Engine) Silhouette() float64 {
	type group struct {
		vectors [][]float64
	}

	var groups []group
	seen := make(map[string]bool)
	for _, c := range e.clusters {
		defs := c.Definitions()
		if len(defs) == 0 {
			continue
		}
		names := make([]string, 0, len(defs))
		for _, def := range defs {
			names = append(names, def.Symbol)
		}
		sort.Strings(names)
		key := strings.Join(names, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true

		g := group{}
		for _, def := range defs {
			v := def.FeatureVector()
			g.vectors = append(g.vectors, v[:])
		}
		groups = append(groups, g)
	}
	if len(groups) < 2 {
		return 0
	}

	var total float64
	var points int
	for gi, g := range groups {
		if len(g.vectors) < 2 {
			continue
		}
		for pi, point := range g.vectors {
			a := meanDistanceExcluding(point, g.vectors, pi)

			b := math.Inf(1)
			for oi, other := range groups {
				if oi == gi {
					continue
				}
				if d, ok := meanDistanceTo(point, other.vectors); ok && d < b {
					b = d
				}
			}
			if math.IsInf(b, 1) {
				continue
			}

			denom := math.Max(a, b)
			if denom > 0 {
				total += (b - a) / denom
			}
			points++
		}
	}
	if points == 0 {
		return 0
	}
	return total / float64(points)
}

func meanDistanceExcluding(point []float64, vectors [][]float64, exclude int) float64 {
	var sum float64
	var counted int
	for i, v := range vectors {
		if i == exclude {
			continue
		}
		if d, ok := squaredDistance(point, v); ok {
			sum += math.Sqrt(d)
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}

func meanDistanceTo(point []float64, vectors [][]float64) (float64, bool) {
	var sum float64
	var counted int
	for _, v := range vectors {
		if d, ok := squaredDistance(point, v); ok {
			sum += math.Sqrt(d)
			counted++
		}
	}
	if counted == 0 {
		return 0, false
	}
	return sum / float64(counted), true
}

// AverageClusterSize is the mean member count across non-empty clusters.
func (e *Engine) AverageClusterSize() float64 {
	var sum, counted int
	for _, c := range e.clusters {
		if c.Size() > 0 {
			sum += c.Size()
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return float64(sum) / float64(counted)
}
