package filter

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"dmca/internal/errors"
	"dmca/internal/model"
)

// Profile is an optional TOML file that tunes the filter word sets for a
// particular language or repository. Replace lists swap out a built-in set
// entirely; extend lists add to whatever is active.
type Profile struct {
	MinLength int `toml:"min_length"`

	ReplaceStopWords []string `toml:"replace_stop_words"`
	ReplaceKeywords  []string `toml:"replace_keywords"`
	ReplaceNoise     []string `toml:"replace_noise"`

	ExtendStopWords []string `toml:"extend_stop_words"`
	ExtendKeywords  []string `toml:"extend_keywords"`
	ExtendNoise     []string `toml:"extend_noise"`
}

// LoadProfile reads a TOML profile and returns a filter configured by it.
func LoadProfile(path string) (*Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.IoFailure, "failed to read filter profile "+path, err)
	}

	var profile Profile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, errors.New(errors.ParseFailed, "failed to parse filter profile "+path, err)
	}

	return New().Apply(&profile), nil
}

// Apply overlays a profile on the filter and returns the filter for chaining.
func (f *Filter) Apply(profile *Profile) *Filter {
	if profile == nil {
		return f
	}
	if profile.MinLength > 0 {
		f.minLength = profile.MinLength
	}
	if len(profile.ReplaceStopWords) > 0 {
		f.stopWords = toSet(lowerAll(profile.ReplaceStopWords))
	}
	if len(profile.ReplaceKeywords) > 0 {
		f.keywords = toSet(lowerAll(profile.ReplaceKeywords))
	}
	if len(profile.ReplaceNoise) > 0 {
		f.noise = toSet(lowerAll(profile.ReplaceNoise))
	}
	for _, w := range lowerAll(profile.ExtendStopWords) {
		f.stopWords[w] = struct{}{}
	}
	for _, w := range lowerAll(profile.ExtendKeywords) {
		f.keywords[w] = struct{}{}
	}
	for _, w := range lowerAll(profile.ExtendNoise) {
		f.noise[w] = struct{}{}
	}
	return f
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = normalize(w)
	}
	return out
}

// FilterSummaries scrubs both definition lists of every summary in place and
// returns aggregate stats across all of them.
func (f *Filter) FilterSummaries(summaries []model.Summary) Stats {
	var total, remaining int
	for i := range summaries {
		total += len(summaries[i].CtagDefinitions) + len(summaries[i].RegexDefinitions)
		summaries[i].CtagDefinitions = f.FilterDefinitions(summaries[i].CtagDefinitions)
		summaries[i].RegexDefinitions = f.FilterDefinitions(summaries[i].RegexDefinitions)
		remaining += len(summaries[i].CtagDefinitions) + len(summaries[i].RegexDefinitions)
	}

	stats := Stats{
		TotalWords:     total,
		RemainingWords: remaining,
		FilteredWords:  total - remaining,
	}
	if total > 0 {
		stats.FilterRatio = float64(stats.FilteredWords) / float64(total)
	}
	return stats
}
