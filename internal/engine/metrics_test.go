package engine

import (
	"math"
	"testing"

	"dmca/internal/model"
)

func TestSilhouetteTwoTightGroups(t *testing.T) {
	// Two groups with identical internal connection patterns: X symbols in
	// the first half of the stream, Y symbols in the second.
	e := newTestEngine(t, [][]string{
		{"x1", "x2", "x3"},
		{"x1", "x2", "x3"},
		{"y1", "y2", "y3"},
		{"y1", "y2", "y3"},
	})
	e.Cluster()

	var nonEmpty int
	for _, c := range e.Clusters() {
		if len(c.Definitions()) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty < 2 {
		t.Fatalf("got %d non-empty clusters, want at least 2", nonEmpty)
	}

	if s := e.Silhouette(); s <= 0.5 {
		t.Errorf("Silhouette() = %v, want > 0.5 for two well-separated groups", s)
	}
}

func TestSilhouetteFewGroups(t *testing.T) {
	e := New(DefaultOptions(), nil)
	if s := e.Silhouette(); s != 0 {
		t.Errorf("Silhouette() on empty engine = %v, want 0", s)
	}

	e = newTestEngine(t, [][]string{{"solo", "pair"}})
	e.Cluster()
	if s := e.Silhouette(); s != 0 {
		t.Errorf("Silhouette() = %v, want 0 with fewer than two distinct groups", s)
	}
}

func TestClusterVectorsUnitNorm(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"alpha", "beta"},
		{"alpha", "gamma"},
		{"delta"},
	})
	e.Cluster()

	for i, c := range e.Clusters() {
		if c.Size() == 0 {
			continue
		}
		v := c.FeatureVector()
		var norm float64
		for _, x := range v {
			norm += x * x
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("cluster %d (%s): vector norm = %v, want 1", i, c.Type, norm)
		}
	}
}

func TestMetricsBeforeClustering(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"alpha"},
		{"beta"},
	})

	if m := e.ComputeMetrics(); m != (Metrics{}) {
		t.Errorf("metrics before clustering = %+v, want all zero", m)
	}
}

func TestEntropyGainReducesSpread(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"x1", "x2"},
		{"x1", "x2"},
		{"y1", "y2"},
		{"y1", "y2"},
	})
	e.Cluster()

	if g := e.EntropyGain(); g < 0 {
		t.Errorf("EntropyGain() = %v, want >= 0 for well-separated groups", g)
	}
}

func TestVarianceGainRange(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"x1", "x2"},
		{"x1", "x2"},
		{"y1", "y2"},
		{"y1", "y2"},
	})
	e.Cluster()

	if g := e.VarianceGain(); g > 1 {
		t.Errorf("VarianceGain() = %v, want <= 1", g)
	}
}

func TestAverageClusterSize(t *testing.T) {
	e := New(DefaultOptions(), nil)
	if got := e.AverageClusterSize(); got != 0 {
		t.Errorf("AverageClusterSize() on empty engine = %v, want 0", got)
	}

	e.clusters = []*model.Cluster{
		clusterWith(2),
		clusterWith(4),
		model.NewCluster(model.ClusterChronic),
	}
	if got := e.AverageClusterSize(); math.Abs(got-3) > 1e-9 {
		t.Errorf("AverageClusterSize() = %v, want 3 over the non-empty clusters", got)
	}
}

func clusterWith(n int) *model.Cluster {
	c := model.NewCluster(model.ClusterChronic)
	for i := 0; i < n; i++ {
		c.Add(&model.Definition{Symbol: string(rune('a' + i))})
	}
	return c
}

func TestSquaredDistance(t *testing.T) {
	tests := []struct {
		name   string
		a, b   []float64
		want   float64
		wantOK bool
	}{
		{"matching", []float64{0, 0}, []float64{3, 4}, 25, true},
		{"identical", []float64{1, 2}, []float64{1, 2}, 0, true},
		{"mismatched dims", []float64{1}, []float64{1, 2}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := squaredDistance(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(d-tt.want) > 1e-9 {
				t.Errorf("squaredDistance = %v, want %v", d, tt.want)
			}
		})
	}
}
