package persistence

import (
	"context"
	"errors"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/spec-kit/pagehub/internal/config"
)

// ObjectStore wraps the minio client used for per-site content buckets.
type ObjectStore struct {
	Client *minio.Client
}

// NewObjectStore builds a client for the configured S3-compatible endpoint.
// The client does not dial until first use.
func NewObjectStore(cfg config.ObjectStoreConfig, logger *zap.Logger) (*ObjectStore, error) {
	if cfg.Endpoint == "" {
		logger.Warn("OBJECT_STORE_ENDPOINT not provided; object storage disabled")
		return &ObjectStore{Client: nil}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("object store client configured", zap.String("endpoint", cfg.Endpoint))
	return &ObjectStore{Client: client}, nil
}

// Ping verifies object store connectivity by listing buckets.
func (o *ObjectStore) Ping(ctx context.Context) error {
	if o == nil || o.Client == nil {
		return errors.New("object store client not configured")
	}
	_, err := o.Client.ListBuckets(ctx)
	return err
}

// ClientHandle returns the underlying minio client.
func (o *ObjectStore) ClientHandle() *minio.Client {
	if o == nil {
		return nil
	}
	return o.Client
}
