package storage

import (
	"context"
	"sync"
	"time"

	"usermanagement/internal/domain"
)

type memoryObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// MemoryStore keeps artifacts in process memory. It is meant for local
// development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	bucket    string
	publicURL string
	objects   map[string]memoryObject
}

// NewMemoryStore returns an empty MemoryStore. An empty publicURL defaults to memory://{bucket}.
func NewMemoryStore(bucket, publicURL string) *MemoryStore {
	if publicURL == "" {
		publicURL = "memory://" + bucket
	}
	return &MemoryStore{bucket: bucket, publicURL: publicURL, objects: make(map[string]memoryObject)}
}

func (m *MemoryStore) EnsureBucket(ctx context.Context) error { return nil }

func (m *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.mu.Lock()
	m.objects[key] = memoryObject{data: buf, contentType: contentType, modified: time.Now()}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Stat(ctx context.Context, key string) (*domain.ArtifactInfo, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.ArtifactInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		ContentType:  obj.contentType,
		LastModified: obj.modified,
	}, nil
}

// Get returns a copy of the stored bytes.
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(obj.data))
	copy(out, obj.data)
	return out, true
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return objectURL(m.publicURL, key)
}
