package publish

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/zen-systems/promptgen/pkg/config"
)

// ObjectStore uploads a local file to bucket/key.
type ObjectStore interface {
	PutFile(ctx context.Context, bucket, key, path, contentType string) error
}

// MinioStore is an ObjectStore for S3 and S3-compatible services.
type MinioStore struct {
	api *minio.Client
}

var _ ObjectStore = (*MinioStore)(nil)

// NewMinioStore creates a store from the S3 settings. Static keys are used when
// set; otherwise credentials come from the AWS environment variables, the shared
// credentials file, or the instance role, in that order.
func NewMinioStore(cfg config.S3) (*MinioStore, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("s3 endpoint is required")
	}

	creds := credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
	})
	if cfg.AccessKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: !cfg.Insecure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create s3 client for %s", cfg.Endpoint)
	}
	return &MinioStore{api: client}, nil
}

// PutFile uploads the file at path.
func (s *MinioStore) PutFile(ctx context.Context, bucket, key, path, contentType string) error {
	_, err := s.api.FPutObject(ctx, bucket, key, path, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}
