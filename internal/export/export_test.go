package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"dmca/internal/logging"
)

func TestWrite_Compressed(t *testing.T) {
	dir := t.TempDir()
	graph := []byte(`[{"type":"CHRONIC","radius":1,"vector":[0,0,0,0],"definitions":[]}]`)

	exporter := NewExporter(logging.Discard())
	archive, err := exporter.Write(dir, "clusters", graph, Manifest{
		Tool:        "dmca",
		Version:     "1.0.0",
		Summaries:   3,
		Commits:     2,
		Definitions: 5,
		Clusters:    1,
		Fingerprint: "fp",
	}, true)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if filepath.Base(archive.DataPath) != "clusters.json.gz" {
		t.Errorf("DataPath = %q, want clusters.json.gz", archive.DataPath)
	}

	f, err := os.Open(archive.DataPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	decompressed, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(decompressed, graph) {
		t.Error("decompressed archive should match the original graph bytes")
	}

	manifest, err := ReadManifest(archive.ManifestPath)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if !manifest.Compressed {
		t.Error("manifest.Compressed should be true")
	}
	if manifest.CreatedAt == "" {
		t.Error("manifest.CreatedAt should be filled in")
	}
	if manifest.Tool != "dmca" || manifest.Version != "1.0.0" {
		t.Errorf("manifest tool/version = %q/%q, want dmca/1.0.0", manifest.Tool, manifest.Version)
	}
	if manifest.Definitions != 5 || manifest.Clusters != 1 {
		t.Errorf("manifest counts = (%d, %d), want (5, 1)", manifest.Definitions, manifest.Clusters)
	}
}

func TestWrite_Uncompressed(t *testing.T) {
	dir := t.TempDir()
	graph := []byte(`[]`)

	exporter := NewExporter(nil)
	archive, err := exporter.Write(dir, "clusters", graph, Manifest{Tool: "dmca"}, false)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if filepath.Base(archive.DataPath) != "clusters.json" {
		t.Errorf("DataPath = %q, want clusters.json", archive.DataPath)
	}

	data, err := os.ReadFile(archive.DataPath)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if !bytes.Equal(data, graph) {
		t.Error("uncompressed archive should match the graph bytes")
	}

	manifest, err := ReadManifest(archive.ManifestPath)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if manifest.Compressed {
		t.Error("manifest.Compressed should be false")
	}
}

func TestWrite_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	exporter := NewExporter(logging.Discard())
	if _, err := exporter.Write(dir, "clusters", []byte(`[]`), Manifest{}, true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "manifest.toml")); err != nil {
		t.Errorf("manifest.toml missing: %v", err)
	}
}

func TestReadManifest_Missing(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "manifest.toml")); err == nil {
		t.Error("ReadManifest() should fail for a missing file")
	}
}
