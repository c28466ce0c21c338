package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"usermanagement/internal/domain"
)

type s3Store struct {
	client    *s3.Client
	bucket    string
	region    string
	publicURL string
}

func newS3Store(config Config) (*s3Store, error) {
	sc := config.S3
	if sc.Region == "" {
		return nil, fmt.Errorf("s3 region is not set")
	}
	awsCfg := aws.Config{
		Region: sc.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(sc.AccessKeyID, sc.SecretAccessKey, ""),
		),
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
			o.UsePathStyle = true
		}
	})
	publicURL := config.PublicURL
	if publicURL == "" {
		if sc.Endpoint != "" {
			publicURL = objectURL(sc.Endpoint, config.Bucket)
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.Bucket, sc.Region)
		}
	}
	return &s3Store{client: client, bucket: config.Bucket, region: sc.Region, publicURL: publicURL}, nil
}

func (s *s3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		log.Printf("[STORAGE] Bucket %q already exists", s.bucket)
		return nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("%w: check bucket %q: %w", domain.ErrDependency, s.bucket, err)
	}
	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("%w: create bucket %q: %w", domain.ErrDependency, s.bucket, err)
	}
	log.Printf("[STORAGE] Bucket %q created", s.bucket)
	return nil
}

func (s *s3Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("%w: put object %q: %w", domain.ErrDependency, key, err)
	}
	return nil
}

func (s *s3Store) Stat(ctx context.Context, key string) (*domain.ArtifactInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: head object %q: %w", domain.ErrDependency, key, err)
	}
	return &domain.ArtifactInfo{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete object %q: %w", domain.ErrDependency, key, err)
	}
	return nil
}

func (s *s3Store) PublicURL(key string) string {
	return objectURL(s.publicURL, key)
}
