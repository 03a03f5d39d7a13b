package parser

import (
	"os"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"dmca/internal/errors"
	"dmca/internal/model"
)

// devNull is how git spells a nonexistent side of a diff.
const devNull = "/dev/null"

// LoadCommitFromDiff builds a single commit record from raw unified-diff
// text. It covers repositories where only patch files survive and no
// pre-chewed commit JSON exists.
func LoadCommitFromDiff(path, id, message string) (model.Commit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Commit{}, errors.New(errors.IoFailure, "failed to read diff file "+path, err)
	}
	return ParseCommitDiff(string(data), id, message)
}

// ParseCommitDiff parses unified-diff text into a commit with one hunk per
// diff hunk. File status is derived from the /dev/null convention.
func ParseCommitDiff(text, id, message string) (model.Commit, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(text)).ReadAllFiles()
	if err != nil {
		return model.Commit{}, errors.New(errors.ParseFailed, "failed to parse unified diff", err)
	}

	commit := model.Commit{
		ID:           id,
		Message:      message,
		SummaryIndex: -1,
	}

	for _, fd := range fileDiffs {
		status := fileStatus(fd)
		file := diffPath(fd.NewName)
		if status == model.FileDeleted {
			file = diffPath(fd.OrigName)
		}

		if len(fd.Hunks) == 0 {
			// Pure renames and mode changes carry no hunks; keep a marker
			// so file attribution still sees the path.
			commit.Hunks = append(commit.Hunks, model.Hunk{File: file, Status: status})
			continue
		}

		for _, h := range fd.Hunks {
			oldText, newText := splitHunkBody(string(h.Body))
			commit.Hunks = append(commit.Hunks, model.Hunk{
				File:     file,
				Status:   status,
				OldStart: int(h.OrigStartLine),
				OldLines: int(h.OrigLines),
				NewStart: int(h.NewStartLine),
				NewLines: int(h.NewLines),
				OldText:  oldText,
				NewText:  newText,
			})
		}
	}

	return commit, nil
}

func fileStatus(fd *diff.FileDiff) model.FileStatus {
	switch {
	case fd.OrigName == devNull:
		return model.FileAdded
	case fd.NewName == devNull:
		return model.FileDeleted
	case diffPath(fd.OrigName) != diffPath(fd.NewName):
		return model.FileRenamed
	default:
		return model.FileModified
	}
}

// diffPath strips the a/ or b/ prefix git puts on diff file names.
func diffPath(name string) string {
	if len(name) > 2 && (strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/")) {
		return name[2:]
	}
	return name
}

// splitHunkBody separates a hunk body into its removed and added sides.
// Context lines appear on both sides.
func splitHunkBody(body string) (oldText, newText string) {
	var oldLines, newLines []string
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		switch line[0] {
		case '+':
			newLines = append(newLines, line[1:])
		case '-':
			oldLines = append(oldLines, line[1:])
		default:
			text := line
			if text[0] == ' ' {
				text = text[1:]
			}
			oldLines = append(oldLines, text)
			newLines = append(newLines, text)
		}
	}
	return strings.Join(oldLines, "\n"), strings.Join(newLines, "\n")
}
