// Package parser loads summary and commit records from disk. The engine
// never sees malformed input: every loader here fails before ingestion with
// a PARSE_FAILED or IO_FAILURE error.
package parser

import (
	"bytes"
	"encoding/json"
	"os"

	"dmca/internal/errors"
	"dmca/internal/model"
)

// LoadSummaries reads a JSON array of summary records from path.
func LoadSummaries(path string) ([]model.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.IoFailure, "failed to read summary file "+path, err)
	}

	var summaries []model.Summary
	if err := decodeArray(data, &summaries); err != nil {
		return nil, errors.New(errors.ParseFailed, "failed to parse summary file "+path, err)
	}
	return summaries, nil
}

// LoadCommits reads a JSON array of commit records from path.
func LoadCommits(path string) ([]model.Commit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.IoFailure, "failed to read commit file "+path, err)
	}

	var commits []model.Commit
	if err := decodeArray(data, &commits); err != nil {
		return nil, errors.New(errors.ParseFailed, "failed to parse commit file "+path, err)
	}
	return commits, nil
}

// decodeArray unmarshals data into target, requiring a JSON array at the
// top level. A bare object or scalar is a parse failure, not an empty input.
func decodeArray(data []byte, target interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return errors.New(errors.ParseFailed, "top-level JSON value must be an array", nil)
	}
	return json.Unmarshal(data, target)
}
