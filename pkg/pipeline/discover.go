package pipeline

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// ErrNoConfigs is returned when the prompts directory holds no prompt files.
var ErrNoConfigs = errors.New("no prompt files found")

// Discover returns the *.json files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "list prompt files in %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		return nil, errors.WithHintf(errors.Wrapf(ErrNoConfigs, "in %s", dir), "add *.json prompt files to %s", dir)
	}
	return files, nil
}
