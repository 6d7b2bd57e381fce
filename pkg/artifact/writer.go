package artifact

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Writer persists artifacts into a local directory.
type Writer struct {
	Dir string
}

// NewWriter creates a writer for dir. The directory is created on first write.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	return &Writer{Dir: dir}, nil
}

// Write stores content as the complete contents of Dir/filename, replacing any
// existing file, and returns the written artifact.
func (w *Writer) Write(content, filename string, origin Origin) (*Artifact, error) {
	if !filepath.IsLocal(filename) {
		return nil, errors.Newf("output file %q must stay inside %s", filename, w.Dir)
	}

	path := filepath.Join(w.Dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", filepath.Dir(path))
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, "write artifact %s", path)
	}

	return newArtifact(content, filename, path, origin), nil
}
