package filter

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"dmca/internal/model"
)

func TestShouldFilter(t *testing.T) {
	f := New()

	tests := []struct {
		name string
		word string
		want bool
	}{
		{"stop word", "the", true},
		{"stop word mixed case", "The", true},
		{"keyword", "return", true},
		{"keyword type", "vector", true},
		{"noise word", "tmp", true},
		{"too short", "ab", true},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"numeric", "12345", true},
		{"leading digit", "9lives", true},
		{"contains dash", "foo-bar", true},
		{"plain identifier", "parseTree", false},
		{"underscore identifier", "my_func", false},
		{"leading underscore", "_internal", false},
		{"scoped identifier", "app::net::Server", false},
		{"destructor", "Widget::~Widget", false},
		{"operator overload", "operator<<", false},
		{"lambda capture", "lambda[&]", false},
		{"identifier with digits", "sha256sum", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ShouldFilter(tt.word); got != tt.want {
				t.Errorf("ShouldFilter(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestFilterDefinitionsKeepsOrder(t *testing.T) {
	f := New()
	got := f.FilterDefinitions([]string{"the", "ParseTree", "int", "Render", "ab"})

	want := []string{"ParseTree", "Render"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterStats(t *testing.T) {
	original := []string{"a", "b", "c", "d"}
	filtered := []string{"c"}

	stats := FilterStats(original, filtered)
	if stats.TotalWords != 4 || stats.FilteredWords != 3 || stats.RemainingWords != 1 {
		t.Errorf("stats = %+v, want 4/3/1", stats)
	}
	if math.Abs(stats.FilterRatio-0.75) > 1e-9 {
		t.Errorf("FilterRatio = %v, want 0.75", stats.FilterRatio)
	}

	empty := FilterStats(nil, nil)
	if empty.FilterRatio != 0 {
		t.Errorf("empty ratio = %v, want 0", empty.FilterRatio)
	}
}

func TestFilterSummaries(t *testing.T) {
	f := New()
	summaries := []model.Summary{
		{CtagDefinitions: []string{"ParseTree", "the"}, RegexDefinitions: []string{"int", "Render"}},
		{CtagDefinitions: []string{"tmp"}},
	}

	stats := f.FilterSummaries(summaries)

	if stats.TotalWords != 5 || stats.RemainingWords != 2 {
		t.Errorf("stats = %+v, want 5 total, 2 remaining", stats)
	}
	if len(summaries[0].CtagDefinitions) != 1 || summaries[0].CtagDefinitions[0] != "ParseTree" {
		t.Errorf("ctag defs = %v, want [ParseTree]", summaries[0].CtagDefinitions)
	}
	if len(summaries[0].RegexDefinitions) != 1 || summaries[0].RegexDefinitions[0] != "Render" {
		t.Errorf("regex defs = %v, want [Render]", summaries[0].RegexDefinitions)
	}
	if len(summaries[1].CtagDefinitions) != 0 {
		t.Errorf("noise-only list = %v, want empty", summaries[1].CtagDefinitions)
	}
}

func TestApplyProfile(t *testing.T) {
	f := New().Apply(&Profile{
		MinLength:       5,
		ReplaceKeywords: []string{"custom"},
		ExtendNoise:     []string{"scratch"},
	})

	tests := []struct {
		word string
		want bool
	}{
		{"four", true},
		{"longenough", false},
		{"custom", true},
		{"return", false},
		{"scratch", true},
	}
	for _, tt := range tests {
		if got := f.ShouldFilter(tt.word); got != tt.want {
			t.Errorf("ShouldFilter(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestApplyNilProfile(t *testing.T) {
	f := New()
	if f.Apply(nil) != f {
		t.Error("Apply(nil) did not return the filter unchanged")
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	content := `min_length = 4
extend_noise = ["widget"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	f, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if !f.ShouldFilter("abc") {
		t.Error("min_length override not applied")
	}
	if !f.ShouldFilter("widget") {
		t.Error("extended noise word not applied")
	}
	if f.ShouldFilter("widgets") {
		t.Error("unrelated word rejected")
	}
}

func TestLoadProfileErrors(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for a missing profile file")
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("min_length = ["), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	if _, err := LoadProfile(bad); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
