package service

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// BucketStore abstracts the object storage operations site provisioning and
// the content plane need.
type BucketStore interface {
	MakeBucket(ctx context.Context, bucket string) error
	RemoveBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, string, error)
	RemoveAllObjects(ctx context.Context, bucket string) (int, error)
}

type minioBucketStore struct {
	client *minio.Client
}

// NewMinioBucketStore adapts a minio client to the BucketStore contract.
func NewMinioBucketStore(client *minio.Client) BucketStore {
	return &minioBucketStore{client: client}
}

func (s *minioBucketStore) MakeBucket(ctx context.Context, bucket string) error {
	return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

func (s *minioBucketStore) RemoveBucket(ctx context.Context, bucket string) error {
	return s.client.RemoveBucket(ctx, bucket)
}

func (s *minioBucketStore) PutObject(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *minioBucketStore) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, string, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}

	// GetObject is lazy; Stat forces the request and surfaces missing keys.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, "", err
	}
	return obj, info.ContentType, nil
}

func (s *minioBucketStore) RemoveAllObjects(ctx context.Context, bucket string) (int, error) {
	removed := 0
	for info := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return removed, info.Err
		}
		if err := s.client.RemoveObject(ctx, bucket, info.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
