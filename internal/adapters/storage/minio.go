package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"usermanagement/internal/domain"
)

type minioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func newMinioStore(config Config) (*minioStore, error) {
	mc := config.Minio
	client, err := minio.New(mc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	publicURL := config.PublicURL
	if publicURL == "" {
		scheme := "http"
		if mc.UseTLS {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, mc.Endpoint, config.Bucket)
	}
	return &minioStore{client: client, bucket: config.Bucket, publicURL: publicURL}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (m *minioStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("%w: check bucket %q: %w", domain.ErrDependency, m.bucket, err)
	}
	if exists {
		log.Printf("[STORAGE] Bucket %q already exists", m.bucket)
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%w: create bucket %q: %w", domain.ErrDependency, m.bucket, err)
	}
	log.Printf("[STORAGE] Bucket %q created", m.bucket)
	return nil
}

func (m *minioStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: put object %q: %w", domain.ErrDependency, key, err)
	}
	return nil
}

func (m *minioStore) Stat(ctx context.Context, key string) (*domain.ArtifactInfo, error) {
	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: stat object %q: %w", domain.ErrDependency, key, err)
	}
	return &domain.ArtifactInfo{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

func (m *minioStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove object %q: %w", domain.ErrDependency, key, err)
	}
	return nil
}

func (m *minioStore) PublicURL(key string) string {
	return objectURL(m.publicURL, key)
}
