package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Artifact is generated text together with where it was written.
// Artifacts are not modified after Write returns them.
type Artifact struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Content   string    `json:"content"`
	Adapter   string    `json:"adapter,omitempty"`
	Model     string    `json:"model,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Hash      string    `json:"hash"`
}

// Origin describes what produced an artifact.
type Origin struct {
	Adapter string
	Model   string
	Source  string // prompt file the artifact was generated from
}

func newArtifact(content, filename, path string, origin Origin) *Artifact {
	a := &Artifact{
		Filename:  filename,
		Path:      path,
		Content:   content,
		Adapter:   origin.Adapter,
		Model:     origin.Model,
		Source:    origin.Source,
		CreatedAt: time.Now().UTC(),
	}
	a.Hash = a.computeHash()
	return a
}

// Size returns the content length in bytes.
func (a *Artifact) Size() int {
	return len(a.Content)
}

func (a *Artifact) computeHash() string {
	h := sha256.New()
	h.Write([]byte(a.Content))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
