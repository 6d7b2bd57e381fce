package prompt

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// TemplateStore reads template files from a directory.
type TemplateStore struct {
	Dir string
}

// NewTemplateStore creates a store rooted at dir.
func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{Dir: dir}
}

// Load returns the raw text of the named template.
func (s *TemplateStore) Load(name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", errors.Mark(errors.Newf("template %q is outside %s", name, s.Dir), ErrInvalidConfig)
	}
	path := filepath.Join(s.Dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		notFound := os.IsNotExist(err)
		err = errors.Wrapf(err, "read template %s", path)
		if notFound {
			err = errors.WithHintf(err, "templates are looked up in %s", s.Dir)
		}
		return "", errors.Mark(err, ErrInvalidConfig)
	}
	return string(data), nil
}
