// Package filter scrubs candidate symbol lists before ingestion. It removes
// stop words, language keywords, noise tokens, and anything that does not
// look like an identifier, so the clustering engine only ever sees symbols
// worth tracking.
package filter

import (
	"strings"
	"unicode"
)

// defaultStopWords are common English words that leak into key-point lists.
var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
	"to", "was", "will", "with", "or", "but", "not", "this", "they",
	"have", "had", "what", "when", "where", "who", "which", "why", "how",
}

// defaultKeywords are programming keywords and type names that are never
// definition names on their own.
var defaultKeywords = []string{
	"auto", "break", "case", "catch", "class", "const", "continue", "default",
	"delete", "do", "else", "enum", "explicit", "extern", "false", "finally",
	"for", "friend", "goto", "if", "inline", "int", "long", "namespace",
	"new", "null", "nullptr", "operator", "private", "protected", "public",
	"return", "short", "signed", "sizeof", "static", "struct", "switch",
	"template", "this", "throw", "true", "try", "typedef", "typename",
	"union", "unsigned", "using", "virtual", "void", "volatile", "while",
	"bool", "char", "double", "float", "string", "vector", "map", "set",
	"list", "array", "function", "method", "variable", "object", "type",
	"include", "define", "ifdef", "ifndef", "endif", "pragma",
}

// defaultNoiseWords are short throwaway names and generic nouns that carry
// no clustering signal.
var defaultNoiseWords = []string{
	"i", "x", "y", "z", "n", "m", "t", "s", "p", "q", "r", "c", "d", "e",
	"f", "g", "h", "j", "k", "l", "o", "u", "v", "w", "b", "tmp", "temp",
	"val", "var", "ptr", "ref", "obj", "cnt", "num", "idx", "len", "str",
	"msg", "err", "ret", "res", "arg", "param", "data", "info", "item",
	"node", "elem", "key", "value", "size", "count", "index", "length",
	"width", "height", "min", "max", "sum", "avg", "std", "dev", "test",
	"debug", "log", "print", "output", "input", "file", "path", "name",
	"id", "uid", "pid", "tid", "time", "date", "year", "month", "day",
	"hour", "minute", "second", "ms", "sec", "us", "ns",
}

// Stats describes one filtering pass over a candidate list.
type Stats struct {
	TotalWords     int     `json:"totalWords"`
	FilteredWords  int     `json:"filteredWords"`
	RemainingWords int     `json:"remainingWords"`
	FilterRatio    float64 `json:"filterRatio"`
}

// Filter holds the word sets used to reject candidate symbols.
type Filter struct {
	stopWords map[string]struct{}
	keywords  map[string]struct{}
	noise     map[string]struct{}
	minLength int
}

// New returns a filter with the built-in stop-word, keyword, and noise sets
// and the default minimum token length of 3.
func New() *Filter {
	return &Filter{
		stopWords: toSet(defaultStopWords),
		keywords:  toSet(defaultKeywords),
		noise:     toSet(defaultNoiseWords),
		minLength: 3,
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// normalize lowercases a word and trims surrounding whitespace.
func normalize(word string) string {
	return strings.TrimSpace(strings.ToLower(word))
}

// isTooShort reports whether the word is below the minimum token length.
func (f *Filter) isTooShort(word string) bool {
	return len(word) < f.minLength
}

// isValidIdentifier reports whether the word looks like an identifier.
// Lambda captures, operator overloads, destructors, and scoped names are
// accepted as-is since their punctuation is structural.
func isValidIdentifier(word string) bool {
	if word == "" {
		return false
	}
	if strings.HasPrefix(word, "lambda[") {
		return true
	}
	if strings.HasPrefix(word, "operator") {
		return true
	}
	if strings.Contains(word, "::~") {
		return true
	}

	first := rune(word[0])
	if !unicode.IsLetter(first) && first != '_' {
		return false
	}

	hasLetter := false
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != ':' {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isNumeric(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ShouldFilter reports whether the candidate word must be rejected.
func (f *Filter) ShouldFilter(word string) bool {
	normalized := normalize(word)

	if normalized == "" || f.isTooShort(normalized) {
		return true
	}

	// Scoped identifiers are judged as a whole, not by their parts.
	if strings.Contains(word, "::") {
		return !isValidIdentifier(word)
	}

	if _, ok := f.stopWords[normalized]; ok {
		return true
	}
	if _, ok := f.keywords[normalized]; ok {
		return true
	}
	if _, ok := f.noise[normalized]; ok {
		return true
	}
	if !isValidIdentifier(word) {
		return true
	}
	if isNumeric(normalized) {
		return true
	}
	return false
}

// FilterDefinitions returns the candidates that survive filtering, in their
// original order and spelling.
func (f *Filter) FilterDefinitions(candidates []string) []string {
	filtered := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !f.ShouldFilter(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// FilterStats computes a Stats record from an original and filtered list.
func FilterStats(original, filtered []string) Stats {
	stats := Stats{
		TotalWords:     len(original),
		RemainingWords: len(filtered),
	}
	stats.FilteredWords = stats.TotalWords - stats.RemainingWords
	if stats.TotalWords > 0 {
		stats.FilterRatio = float64(stats.FilteredWords) / float64(stats.TotalWords)
	}
	return stats
}
