package publish

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zen-systems/promptgen/pkg/artifact"
	"github.com/zen-systems/promptgen/pkg/config"
)

type putCall struct {
	bucket, key, path, contentType string
}

type fakeStore struct {
	calls []putCall
	err   error
}

func (s *fakeStore) PutFile(_ context.Context, bucket, key, path, contentType string) error {
	s.calls = append(s.calls, putCall{bucket, key, path, contentType})
	return s.err
}

func writeArtifact(t *testing.T) *artifact.Artifact {
	t.Helper()
	w, err := artifact.NewWriter(t.TempDir())
	require.NoError(t, err)
	art, err := w.Write("<p>hi</p>", "out.txt", artifact.Origin{})
	require.NoError(t, err)
	return art
}

func TestPublishUploads(t *testing.T) {
	store := &fakeStore{}
	p := NewPublisher(store, zap.NewNop())
	art := writeArtifact(t)

	result, err := p.Publish(context.Background(), art, Destination{Bucket: "bucket", Key: "prod/outputs/out.txt"})
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, "s3://bucket/prod/outputs/out.txt", result.URI())
	require.Len(t, store.calls, 1)
	assert.Equal(t, putCall{"bucket", "prod/outputs/out.txt", art.Path, "text/html"}, store.calls[0])
}

func TestPublishSkipsWithoutBucket(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := &fakeStore{}
	p := NewPublisher(store, zap.New(core))

	result, err := p.Publish(context.Background(), writeArtifact(t), Destination{Key: "beta/outputs/out.txt"})
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Empty(t, store.calls)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestPublishSkipsWithNilStore(t *testing.T) {
	p := NewPublisher(nil, nil)
	result, err := p.Publish(context.Background(), writeArtifact(t), Destination{Key: "k"})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
}

func TestPublishUploadFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	store := &fakeStore{err: errors.New("access denied")}
	p := NewPublisher(store, zap.New(core))

	_, err := p.Publish(context.Background(), writeArtifact(t), Destination{Bucket: "bucket", Key: "k"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpload))
	assert.Contains(t, err.Error(), "access denied")
	assert.Equal(t, 1, logs.Len(), "failure is reported before it is returned")
}

func TestPublishBucketWithoutStore(t *testing.T) {
	p := NewPublisher(nil, nil)
	_, err := p.Publish(context.Background(), writeArtifact(t), Destination{Bucket: "bucket", Key: "k"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpload))
}

func TestPublishNilArtifact(t *testing.T) {
	_, err := NewPublisher(&fakeStore{}, nil).Publish(context.Background(), nil, Destination{Bucket: "b", Key: "k"})
	require.Error(t, err)
}

func TestNewMinioStore(t *testing.T) {
	store, err := NewMinioStore(config.S3{Endpoint: "localhost:9000", Insecure: true, AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = NewMinioStore(config.S3{})
	require.Error(t, err)
}
