// Package storage provides the S3-backed archive for signed mention
// documents.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appmention "github.com/civilregistry/backend/internal/application/mention"
	"github.com/civilregistry/backend/internal/domain/registry"
	infraconfig "github.com/civilregistry/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ensure S3DocumentArchive implements ObjectStorage
var _ appmention.ObjectStorage = (*S3DocumentArchive)(nil)

// S3DocumentArchive archives signed mention documents in an S3-compatible
// object store (AWS S3, MinIO, ...). Signed documents are immutable once
// stored; the archive never overwrites or deletes.
type S3DocumentArchive struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3DocumentArchive creates a new S3DocumentArchive from configuration
func NewS3DocumentArchive(cfg *infraconfig.StorageConfig, logger *zap.Logger) (*S3DocumentArchive, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			if _, err := url.Parse(endpoint); err == nil {
				o.BaseEndpoint = aws.String(endpoint)
			}
		}
	})

	return &S3DocumentArchive{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (s *S3DocumentArchive) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Ignore "BucketAlreadyOwnedByYou" error (race condition)
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// StoreSignedDocument archives the verified signed content under a key
// derived from the document identity, and returns the storage locator the
// registry records.
func (s *S3DocumentArchive) StoreSignedDocument(ctx context.Context, content []byte, documentID uuid.UUID) (registry.StorageResult, error) {
	if len(content) == 0 {
		return registry.StorageResult{}, errors.New("signed content is empty")
	}

	key := signedDocumentKey(documentID, time.Now().UTC())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return registry.StorageResult{}, fmt.Errorf("failed to archive signed document %s: %w", documentID, err)
	}

	s.logger.Info("signed document archived",
		zap.String("documentId", documentID.String()),
		zap.String("key", key),
		zap.Int("bytes", len(content)))

	return registry.StorageResult{Container: s.bucket, Reference: key}, nil
}

// signedDocumentKey lays keys out by year and month so lifecycle rules can
// target archival tiers by prefix.
func signedDocumentKey(documentID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("mentions/%04d/%02d/%s.pdf", at.Year(), int(at.Month()), documentID)
}
