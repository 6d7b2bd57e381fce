package publish

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/zen-systems/promptgen/pkg/artifact"
)

// ContentType is set on every published object.
const ContentType = "text/html"

// ErrUpload marks a failed upload.
var ErrUpload = errors.New("upload failed")

// Destination addresses an object in the remote store.
type Destination struct {
	Bucket string
	Key    string
}

// URI returns the s3:// form of the destination.
func (d Destination) URI() string {
	return "s3://" + d.Bucket + "/" + d.Key
}

// Result reports what Publish did.
type Result struct {
	Destination
	Skipped bool
}

// Publisher mirrors local artifacts to an object store.
type Publisher struct {
	store ObjectStore
	log   *zap.Logger
}

// NewPublisher creates a publisher. store may be nil when no bucket is
// configured; every publish is then skipped.
func NewPublisher(store ObjectStore, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{store: store, log: log}
}

// Publish uploads the artifact file to dest. An empty bucket skips the upload
// and is not an error. A failed upload is logged and returned marked with ErrUpload.
func (p *Publisher) Publish(ctx context.Context, art *artifact.Artifact, dest Destination) (Result, error) {
	result := Result{Destination: dest}
	if art == nil {
		return result, errors.New("no artifact to publish")
	}

	if dest.Bucket == "" {
		p.log.Warn("no bucket configured, keeping artifact local",
			zap.String("path", art.Path),
			zap.String("key", dest.Key),
		)
		result.Skipped = true
		return result, nil
	}
	if p.store == nil {
		return result, errors.Mark(errors.Newf("no object store for bucket %s", dest.Bucket), ErrUpload)
	}

	if err := p.store.PutFile(ctx, dest.Bucket, dest.Key, art.Path, ContentType); err != nil {
		p.log.Error("upload failed",
			zap.String("path", art.Path),
			zap.String("uri", dest.URI()),
			zap.Error(err),
		)
		return result, errors.Mark(errors.Wrapf(err, "upload %s to %s", art.Path, dest.URI()), ErrUpload)
	}

	p.log.Info("uploaded", zap.String("uri", dest.URI()), zap.Int("bytes", art.Size()))
	return result, nil
}
