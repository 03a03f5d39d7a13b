package engine

import (
	"sort"

	"dmca/internal/model"
)

// fileBucket collects the commits attributed to one file path, after rename
// merging, plus the prior names recorded by renames. The bucket's symbols
// are derived from its commits by bucketSymbols.
type fileBucket struct {
	file    string
	history []string
	commits []*model.Commit
}

// ProcessCommits links the commit stream to the ingested summaries, builds
// the per-file definition table, detects renames, and positions every
// definition on the file axis. Statistics are recomputed afterwards because
// the file definitions are new graph nodes.
func (e *Engine) ProcessCommits(commits []model.Commit) {
	if e.state != StateStatsComputed {
		e.logger.Warn("commit ingestion skipped: summaries not processed", map[string]interface{}{
			"state": int(e.state),
		})
		return
	}

	e.commits = make([]model.Commit, len(commits))
	copy(e.commits, commits)
	e.linkSummaries()
	e.state = StateIngestedCommits

	e.attributeFiles()
	e.computeStatistics()
	e.state = StateFilesAttributed

	e.logger.Debug("attributed commit stream", map[string]interface{}{
		"commits": len(e.commits),
		"files":   len(e.fileDefs),
	})
}

// linkSummaries resolves each commit's back-reference into the summary
// array by hash identifier. Commits without a matching summary get -1.
func (e *Engine) linkSummaries() {
	byID := make(map[string]int, len(e.summaries))
	for i := range e.summaries {
		byID[e.summaries[i].ID] = i
	}
	for i := range e.commits {
		if idx, ok := byID[e.commits[i].ID]; ok {
			e.commits[i].SummaryIndex = idx
		} else {
			e.commits[i].SummaryIndex = -1
		}
	}
}

// attributeFiles buckets commits by file path, merges rename pairs, builds
// a file-path definition per surviving bucket, sorts the file axis by
// average similarity, and derives each definition's fileVector.
func (e *Engine) attributeFiles() {
	e.buckets = e.bucketCommits()

	total := len(e.summaries)
	for _, bucket := range e.buckets {
		def := e.files.GetOrCreate(bucket.file)
		def.History = append(def.History, bucket.history...)
		for _, commit := range bucket.commits {
			if commit.SummaryIndex < 0 {
				continue
			}
			def.AddConnection(commit.SummaryIndex, connectionWeight(commit.SummaryIndex, total))
		}
	}

	e.fileDefs = e.sortFileAxis()

	e.referenceDefinitions()
	e.computeFileVectors()
}

// bucketCommits groups commits by the file paths their hunks touch,
// merging rename pairs detected inside each commit. Bucket order follows
// first mention in the commit stream.
func (e *Engine) bucketCommits() []*fileBucket {
	byFile := make(map[string]*fileBucket)
	var order []*fileBucket

	bucketFor := func(file string) *fileBucket {
		if b, ok := byFile[file]; ok {
			return b
		}
		b := &fileBucket{file: file}
		byFile[file] = b
		order = append(order, b)
		return b
	}

	for i := range e.commits {
		commit := &e.commits[i]

		seen := make(map[string]bool)
		for _, hunk := range commit.Hunks {
			if hunk.File == "" {
				continue
			}
			bucket := bucketFor(hunk.File)
			if !seen[hunk.File] {
				bucket.commits = append(bucket.commits, commit)
				seen[hunk.File] = true
			}
		}

		for _, rename := range detectRenames(commit.Hunks) {
			from, to := byFile[rename.from], byFile[rename.to]
			if from == nil || to == nil || from == to {
				continue
			}
			to.history = append(to.history, rename.from)
			to.history = append(to.history, from.history...)
			for _, c := range from.commits {
				if !containsCommit(to.commits, c) {
					to.commits = append(to.commits, c)
				}
			}
			delete(byFile, rename.from)
			for j, b := range order {
				if b == from {
					order = append(order[:j], order[j+1:]...)
					break
				}
			}
		}
	}

	return order
}

type renamePair struct {
	from string
	to   string
}

// detectRenames pairs deleted and added hunks of a single commit whose
// signed line spans line up: the deleted side's (oldStart, oldLines) equal
// the added side's (newStart, newLines). Text content is not compared
// because renames routinely rewrite imports. Pairs come back in hunk order
// so merges apply deterministically.
func detectRenames(hunks []model.Hunk) []renamePair {
	var renames []renamePair
	for _, removed := range hunks {
		if removed.Status != model.FileDeleted {
			continue
		}
		for _, added := range hunks {
			if added.Status != model.FileAdded || added.File == removed.File {
				continue
			}
			if removed.OldStart == added.NewStart && removed.OldLines == added.NewLines {
				renames = append(renames, renamePair{from: removed.File, to: added.File})
				break
			}
		}
	}
	return renames
}

func containsCommit(commits []*model.Commit, c *model.Commit) bool {
	for _, existing := range commits {
		if existing == c {
			return true
		}
	}
	return false
}

// sortFileAxis orders file definitions so that related files sit adjacent:
// each file is scored by the average cosine similarity of its connection
// vector to every other file's, then the list is sorted ascending by that
// score. Position on this axis is the file's index.
func (e *Engine) sortFileAxis() []*model.Definition {
	files := e.files.SortedByName()
	if len(files) < 2 {
		return files
	}

	scores := make(map[*model.Definition]float64, len(files))
	for _, f := range files {
		var sum float64
		for _, other := range files {
			if other == f {
				continue
			}
			sum += e.CosineSimilarity(f, other)
		}
		scores[f] = sum / float64(len(files)-1)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return scores[files[i]] < scores[files[j]]
	})
	return files
}

// fileIndex returns a file definition's position on the sorted file axis.
func (e *Engine) fileIndex(file string) int {
	def := e.files.Get(file)
	if def == nil {
		return -1
	}
	for i, f := range e.fileDefs {
		if f == def {
			return i
		}
	}
	return -1
}

// referenceDefinitions appends each file's axis index to the definitions
// the file's commits mention, deduplicated per definition.
func (e *Engine) referenceDefinitions() {
	for _, bucket := range e.buckets {
		index := e.fileIndex(bucket.file)
		if index < 0 {
			continue
		}
		for _, symbol := range e.bucketSymbols(bucket) {
			if def := e.resolveSymbol(symbol); def != nil {
				def.AddReference(index)
			}
		}
	}
}

// bucketSymbols collects the symbol names mentioned by a bucket's commits
// through their linked summaries, deduplicated in mention order.
func (e *Engine) bucketSymbols(bucket *fileBucket) []string {
	var symbols []string
	seen := make(map[string]bool)
	for _, commit := range bucket.commits {
		if commit.SummaryIndex < 0 {
			continue
		}
		summary := &e.summaries[commit.SummaryIndex]
		for _, symbol := range summary.CtagDefinitions {
			if symbol != "" && !seen[symbol] {
				seen[symbol] = true
				symbols = append(symbols, symbol)
			}
		}
		for _, symbol := range summary.RegexDefinitions {
			if symbol != "" && !seen[symbol] {
				seen[symbol] = true
				symbols = append(symbols, symbol)
			}
		}
	}
	return symbols
}

// resolveSymbol finds the definition a raw symbol name refers to, even after
// namespace decomposition re-keyed it under its tail segment or alias
// unification collapsed it into a survivor.
func (e *Engine) resolveSymbol(symbol string) *model.Definition {
	if def := e.defs.Get(symbol); def != nil {
		return def
	}
	if tail := scopeTail(symbol); tail != symbol {
		if def := e.defs.Get(tail); def != nil {
			return def
		}
		symbol = tail
	}
	normalized := model.NormalizeSymbol(symbol)
	for _, def := range e.defs.InsertionOrder() {
		if model.NormalizeSymbol(def.Symbol) == normalized {
			return def
		}
	}
	return nil
}

// computeFileVectors maps every definition to its center of mass on the
// file axis, normalized into [0, 1]. Unreferenced definitions stay at 0.
func (e *Engine) computeFileVectors() {
	span := len(e.fileDefs) - 1
	for _, def := range e.defs.SortedByName() {
		def.FileVector = 0
		if len(def.Referenced) == 0 || span <= 0 {
			continue
		}
		var sum float64
		for _, idx := range def.Referenced {
			sum += float64(idx)
		}
		mean := sum / float64(len(def.Referenced))
		def.FileVector = mean / float64(span)
	}
}

// clusterFiles emits one CONTEXT cluster per surviving file bucket, named
// after the file path and holding the file's definitions. Runs as the last
// clustering pass so hub passes never aggregate file contexts.
func (e *Engine) clusterFiles() {
	for _, bucket := range e.buckets {
		cluster := model.NewContext(bucket.file)
		for _, symbol := range e.bucketSymbols(bucket) {
			if def := e.resolveSymbol(symbol); def != nil {
				cluster.Add(def)
			}
		}
		if cluster.Size() > 0 {
			e.clusters = append(e.clusters, cluster)
		}
	}
}
