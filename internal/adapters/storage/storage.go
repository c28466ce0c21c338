package storage

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"usermanagement/internal/domain"
)

// MinioConfig holds connection settings for a MinIO (or any S3-compatible) server.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseTLS    bool
}

// S3Config holds settings for AWS S3.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Config selects and configures the artifact store.
type Config struct {
	Provider string
	Bucket   string
	// PublicURL is the base objects are served from, bucket included. When
	// empty it is derived from the provider settings.
	PublicURL string
	Minio     MinioConfig
	S3        S3Config
}

// NewArtifactStore creates an artifact store from config. Provider "minio" uses
// minio-go, "s3" uses the AWS SDK, "memory" or unknown keeps objects in process.
func NewArtifactStore(config Config) (domain.ArtifactStore, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is not set")
	}
	switch config.Provider {
	case "minio":
		return newMinioStore(config)
	case "s3":
		return newS3Store(config)
	case "memory":
		return NewMemoryStore(config.Bucket, config.PublicURL), nil
	default:
		log.Printf("[STORAGE] Unknown storage provider %q, using memory", config.Provider)
		return NewMemoryStore(config.Bucket, config.PublicURL), nil
	}
}

func objectURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(key)
}
