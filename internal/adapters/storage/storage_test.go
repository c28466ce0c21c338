package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermanagement/internal/domain"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("invites", "")
	require.NoError(t, store.EnsureBucket(ctx))

	_, err := store.Stat(ctx, "invite_abc.png")
	require.ErrorIs(t, err, domain.ErrNotFound)

	data := []byte{0x89, 'P', 'N', 'G'}
	require.NoError(t, store.Put(ctx, "invite_abc.png", data, "image/png"))
	data[0] = 0

	info, err := store.Stat(ctx, "invite_abc.png")
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size)
	assert.Equal(t, "image/png", info.ContentType)

	got, ok := store.Get("invite_abc.png")
	require.True(t, ok)
	assert.Equal(t, byte(0x89), got[0])

	assert.Equal(t, "memory://invites/invite_abc.png", store.PublicURL("invite_abc.png"))

	require.NoError(t, store.Delete(ctx, "invite_abc.png"))
	_, ok = store.Get("invite_abc.png")
	assert.False(t, ok)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewMemoryStore("b", "").Put(ctx, "k", []byte("x"), "image/png")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewArtifactStore(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantURL string
		wantErr bool
	}{
		{
			name:    "missing bucket",
			config:  Config{Provider: "memory"},
			wantErr: true,
		},
		{
			name:    "memory",
			config:  Config{Provider: "memory", Bucket: "invites", PublicURL: "http://cdn.test/invites/"},
			wantURL: "http://cdn.test/invites/invite_x.png",
		},
		{
			name:    "unknown falls back to memory",
			config:  Config{Provider: "ftp", Bucket: "invites"},
			wantURL: "memory://invites/invite_x.png",
		},
		{
			name: "minio derives public url from endpoint",
			config: Config{Provider: "minio", Bucket: "invites", Minio: MinioConfig{
				Endpoint: "localhost:9000", AccessKey: "minioadmin", SecretKey: "minioadmin",
			}},
			wantURL: "http://localhost:9000/invites/invite_x.png",
		},
		{
			name: "minio with tls",
			config: Config{Provider: "minio", Bucket: "invites", Minio: MinioConfig{
				Endpoint: "storage.example.com", UseTLS: true,
			}},
			wantURL: "https://storage.example.com/invites/invite_x.png",
		},
		{
			name: "s3 virtual host url",
			config: Config{Provider: "s3", Bucket: "invites", S3: S3Config{
				Region: "eu-west-1", AccessKeyID: "id", SecretAccessKey: "secret",
			}},
			wantURL: "https://invites.s3.eu-west-1.amazonaws.com/invite_x.png",
		},
		{
			name: "s3 custom endpoint",
			config: Config{Provider: "s3", Bucket: "invites", S3: S3Config{
				Region: "us-east-1", Endpoint: "http://localhost:4566",
			}},
			wantURL: "http://localhost:4566/invites/invite_x.png",
		},
		{
			name:    "s3 without region",
			config:  Config{Provider: "s3", Bucket: "invites"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewArtifactStore(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, store.PublicURL("invite_x.png"))
		})
	}
}
