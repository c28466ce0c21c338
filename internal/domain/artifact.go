package domain

import (
	"context"
	"time"
)

// ArtifactInfo describes a stored artifact.
type ArtifactInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// ArtifactStore persists rendered invitation artifacts (QR images) and
// resolves the URL they are served from.
type ArtifactStore interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Stat(ctx context.Context, key string) (*ArtifactInfo, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
