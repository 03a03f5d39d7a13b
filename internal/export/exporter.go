package export

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"

	"dmca/internal/errors"
	"dmca/internal/logging"
)

// Manifest describes one exported cluster-graph archive.
type Manifest struct {
	Tool        string `toml:"tool"`
	Version     string `toml:"version"`
	CreatedAt   string `toml:"created_at"`
	Summaries   int    `toml:"summaries"`
	Commits     int    `toml:"commits"`
	Definitions int    `toml:"definitions"`
	Clusters    int    `toml:"clusters"`
	Fingerprint string `toml:"fingerprint"`
	Compressed  bool   `toml:"compressed"`
}

// Archive points at the files one export produced.
type Archive struct {
	DataPath     string
	ManifestPath string
}

// Exporter writes cluster-graph archives with a sibling manifest.
type Exporter struct {
	logger *logging.Logger
}

// NewExporter creates a new exporter.
func NewExporter(logger *logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Exporter{logger: logger}
}

// Write stores the encoded graph under dir as <name>.json.gz (or plain
// <name>.json when compression is off) plus manifest.toml. The manifest's
// CreatedAt and Compressed fields are filled in here.
func (e *Exporter) Write(dir, name string, graph []byte, manifest Manifest, compress bool) (*Archive, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New(errors.IoFailure, "failed to create export directory", err)
	}

	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	manifest.Compressed = compress

	var dataPath string
	if compress {
		dataPath = filepath.Join(dir, name+".json.gz")
		if err := writeCompressed(dataPath, graph); err != nil {
			return nil, err
		}
	} else {
		dataPath = filepath.Join(dir, name+".json")
		if err := os.WriteFile(dataPath, graph, 0644); err != nil {
			return nil, errors.New(errors.IoFailure, "failed to write graph", err)
		}
	}

	manifestPath := filepath.Join(dir, "manifest.toml")
	if err := writeManifest(manifestPath, manifest); err != nil {
		return nil, err
	}

	e.logger.Info("archive exported", map[string]interface{}{
		"data":       dataPath,
		"manifest":   manifestPath,
		"compressed": compress,
		"bytes":      len(graph),
	})

	return &Archive{DataPath: dataPath, ManifestPath: manifestPath}, nil
}

func writeCompressed(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.IoFailure, "failed to create archive", err)
	}
	defer f.Close()

	gz, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		return errors.New(errors.InternalError, "failed to create gzip writer", err)
	}
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return errors.New(errors.IoFailure, "failed to write archive", err)
	}
	if err := gz.Close(); err != nil {
		return errors.New(errors.IoFailure, "failed to finish archive", err)
	}
	return f.Close()
}

func writeManifest(path string, manifest Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.IoFailure, "failed to create manifest", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(manifest); err != nil {
		return errors.New(errors.IoFailure, "failed to encode manifest", err)
	}
	return f.Close()
}

// ReadManifest loads a manifest.toml back.
func ReadManifest(path string) (*Manifest, error) {
	var manifest Manifest
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return nil, errors.New(errors.IoFailure, "failed to read manifest", err)
	}
	return &manifest, nil
}
