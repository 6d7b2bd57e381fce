// Package evidence writes a JSON record of a completed run.
package evidence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/zen-systems/promptgen/pkg/pipeline"
	"github.com/zen-systems/promptgen/pkg/render"
)

// RunRecord captures run-level metadata.
type RunRecord struct {
	Tier           string       `json:"tier"`
	Timestamp      time.Time    `json:"timestamp"`
	DurationMillis int64        `json:"duration_ms"`
	Published      int          `json:"published"`
	Files          []FileRecord `json:"files"`
}

// FileRecord captures what one prompt file produced.
type FileRecord struct {
	Source         string   `json:"source"`
	Template       string   `json:"template"`
	Variables      []string `json:"variables,omitempty"`
	Adapter        string   `json:"adapter"`
	Model          string   `json:"model"`
	OutputPath     string   `json:"output_path"`
	OutputHash     string   `json:"output_hash"`
	Bytes          int      `json:"bytes"`
	Destination    string   `json:"destination,omitempty"`
	DurationMillis int64    `json:"duration_ms"`
}

// FromSummary builds the record of a successful run.
func FromSummary(summary *pipeline.Summary, finished time.Time) RunRecord {
	record := RunRecord{
		Tier:           summary.Tier.String(),
		Timestamp:      finished.UTC(),
		DurationMillis: summary.Duration.Milliseconds(),
		Published:      summary.Published(),
		Files:          make([]FileRecord, 0, len(summary.Files)),
	}

	for _, f := range summary.Files {
		fr := FileRecord{
			Source:         f.Source,
			DurationMillis: f.Duration.Milliseconds(),
		}
		if f.Config != nil {
			fr.Template = f.Config.Template
			fr.Variables = render.Names(f.Config.Variables)
		}
		if f.Artifact != nil {
			fr.Adapter = f.Artifact.Adapter
			fr.Model = f.Artifact.Model
			fr.OutputPath = f.Artifact.Path
			fr.OutputHash = f.Artifact.Hash
			fr.Bytes = f.Artifact.Size()
		}
		if !f.Publish.Skipped {
			fr.Destination = f.Publish.URI()
		}
		record.Files = append(record.Files, fr)
	}
	return record
}

// Write stores record as indented JSON at path, creating parent directories.
func Write(path string, record RunRecord) error {
	if path == "" {
		return errors.New("record path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "create record directory for %s", path)
	}
	return writeJSON(path, record)
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode run record")
	}
	return errors.Wrapf(os.WriteFile(path, append(data, '\n'), 0644), "write run record %s", path)
}
