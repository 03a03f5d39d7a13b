package engine

import (
	"math"
	"testing"

	"dmca/internal/model"
)

func TestRenameDetection(t *testing.T) {
	e := New(DefaultOptions(), nil)
	e.ProcessSummaries(nil)

	e.ProcessCommits([]model.Commit{
		{
			ID: "c0",
			Hunks: []model.Hunk{
				{File: "a.h", Status: model.FileDeleted, OldStart: 1, OldLines: 20},
				{File: "b.h", Status: model.FileAdded, NewStart: 1, NewLines: 20},
			},
		},
	})

	if len(e.buckets) != 1 {
		t.Fatalf("got %d file buckets, want the rename pair merged into 1", len(e.buckets))
	}
	bucket := e.buckets[0]
	if bucket.file != "b.h" {
		t.Errorf("surviving bucket = %q, want b.h", bucket.file)
	}

	var renamed bool
	for _, h := range bucket.history {
		if h == "a.h" {
			renamed = true
		}
	}
	if !renamed {
		t.Errorf("bucket history %v does not record a.h", bucket.history)
	}
}

func TestRenameDetectionSpanMismatch(t *testing.T) {
	e := New(DefaultOptions(), nil)
	e.ProcessSummaries(nil)

	e.ProcessCommits([]model.Commit{
		{
			ID: "c0",
			Hunks: []model.Hunk{
				{File: "a.h", Status: model.FileDeleted, OldStart: 1, OldLines: 20},
				{File: "b.h", Status: model.FileAdded, NewStart: 1, NewLines: 25},
			},
		},
	})

	if len(e.buckets) != 2 {
		t.Errorf("got %d file buckets, want 2 since the spans disagree", len(e.buckets))
	}
}

func TestDetectRenamesHunkOrder(t *testing.T) {
	hunks := []model.Hunk{
		{File: "old1.c", Status: model.FileDeleted, OldStart: 1, OldLines: 10},
		{File: "old2.c", Status: model.FileDeleted, OldStart: 5, OldLines: 7},
		{File: "new1.c", Status: model.FileAdded, NewStart: 1, NewLines: 10},
		{File: "new2.c", Status: model.FileAdded, NewStart: 5, NewLines: 7},
	}

	renames := detectRenames(hunks)
	if len(renames) != 2 {
		t.Fatalf("got %d renames, want 2", len(renames))
	}
	if renames[0].from != "old1.c" || renames[0].to != "new1.c" {
		t.Errorf("renames[0] = %+v, want old1.c -> new1.c", renames[0])
	}
	if renames[1].from != "old2.c" || renames[1].to != "new2.c" {
		t.Errorf("renames[1] = %+v, want old2.c -> new2.c", renames[1])
	}
}

func TestCommitLinking(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"alpha"},
		{"beta"},
	})

	e.ProcessCommits([]model.Commit{
		{ID: "s1", Hunks: []model.Hunk{{File: "f.c", Status: model.FileModified}}},
		{ID: "unknown", Hunks: []model.Hunk{{File: "g.c", Status: model.FileModified}}},
	})

	commits := e.Commits()
	if commits[0].SummaryIndex != 1 {
		t.Errorf("commit s1 SummaryIndex = %d, want 1", commits[0].SummaryIndex)
	}
	if commits[1].SummaryIndex != -1 {
		t.Errorf("unmatched commit SummaryIndex = %d, want -1", commits[1].SummaryIndex)
	}
}

func TestFileAttribution(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"alpha"},
		{"beta"},
	})

	e.ProcessCommits([]model.Commit{
		{ID: "s0", Hunks: []model.Hunk{{File: "f1.c", Status: model.FileModified}}},
		{ID: "s1", Hunks: []model.Hunk{{File: "f2.c", Status: model.FileModified}}},
	})

	if e.State() != StateFilesAttributed {
		t.Fatalf("state = %d, want StateFilesAttributed", e.State())
	}
	if got := len(e.FileDefinitions()); got != 2 {
		t.Fatalf("got %d file definitions, want 2", got)
	}

	alpha, beta := e.Definition("alpha"), e.Definition("beta")
	if alpha == nil || beta == nil {
		t.Fatal("expected definitions alpha and beta")
	}
	if len(alpha.Referenced) != 1 || len(beta.Referenced) != 1 {
		t.Fatalf("references: alpha %v, beta %v, want one file each",
			alpha.Referenced, beta.Referenced)
	}
	if alpha.Referenced[0] == beta.Referenced[0] {
		t.Error("alpha and beta attribute to the same file index")
	}

	// The two definitions sit at opposite ends of a two-file axis.
	vectors := []float64{alpha.FileVector, beta.FileVector}
	if math.Min(vectors[0], vectors[1]) != 0 || math.Max(vectors[0], vectors[1]) != 1 {
		t.Errorf("file vectors = %v, want {0, 1}", vectors)
	}
}

func TestFileContextClusters(t *testing.T) {
	e := newTestEngine(t, [][]string{
		{"alpha"},
		{"beta"},
	})
	e.ProcessCommits([]model.Commit{
		{ID: "s0", Hunks: []model.Hunk{{File: "f1.c", Status: model.FileModified}}},
		{ID: "s1", Hunks: []model.Hunk{{File: "f2.c", Status: model.FileModified}}},
	})
	e.Cluster()

	var fileContexts []*model.Cluster
	for _, c := range e.ClustersByType(model.ClusterContext) {
		if c.Symbol == "f1.c" || c.Symbol == "f2.c" {
			fileContexts = append(fileContexts, c)
		}
	}
	if len(fileContexts) != 2 {
		t.Fatalf("got %d file contexts, want 2", len(fileContexts))
	}
	for _, c := range fileContexts {
		if c.Size() == 0 {
			t.Errorf("file context %s is empty", c.Symbol)
		}
	}
}

func TestProcessCommitsRequiresSummaries(t *testing.T) {
	e := New(DefaultOptions(), nil)

	e.ProcessCommits([]model.Commit{{ID: "c0"}})

	if len(e.Commits()) != 0 {
		t.Error("commit ingestion ran without a processed summary stream")
	}
	if e.State() != StateEmpty {
		t.Errorf("state = %d, want StateEmpty", e.State())
	}
}
