package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectAPI is the part of the S3 client the store uses.
type objectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store keeps snapshots as gzipped objects in a bucket.
type s3Store struct {
	client objectAPI
	bucket string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed store using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "snapshot-s3-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 snapshot store initialised")

	return newS3Store(s3.NewFromConfig(cfg), bucket, logger), nil
}

func newS3Store(client objectAPI, bucket string, logger zerolog.Logger) *s3Store {
	return &s3Store{client: client, bucket: bucket, logger: logger}
}

// Save uploads the snapshot as one object.
func (s *s3Store) Save(ctx context.Context, key string, records []json.RawMessage) error {
	var buf bytes.Buffer
	if err := writeRecords(&buf, records); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(s.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(buf.Bytes()),
		ContentType:     aws.String("application/x-ndjson"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("records", len(records)).
		Msg("snapshot uploaded to S3")
	return nil
}

// Load downloads and decodes a snapshot object.
func (s *s3Store) Load(ctx context.Context, key string) ([]json.RawMessage, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}
	defer result.Body.Close()

	records, err := readRecords(ctx, result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 object %s: %w", key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("records", len(records)).
		Msg("snapshot loaded from S3")
	return records, nil
}

// fallbackStore tries S3 first and falls back to the local store.
type fallbackStore struct {
	s3        Store
	local     Store
	s3Prefix  string
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that uses S3 when enabled and configured
// and the local store otherwise or when S3 fails. S3 keys get s3Prefix.
func NewFallbackStore(remote, local Store, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3:        remote,
		local:     local,
		s3Prefix:  s3Prefix,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "snapshot-fallback-store").Logger(),
	}
}

func (s *fallbackStore) useS3() bool {
	return s.s3Enabled && s.s3 != nil
}

// Save writes to S3, or to local disk if that fails.
func (s *fallbackStore) Save(ctx context.Context, key string, records []json.RawMessage) error {
	if s.useS3() {
		err := s.s3.Save(ctx, s.s3Prefix+key, records)
		if err == nil {
			return nil
		}
		s.logger.Warn().
			Err(err).
			Str("s3_key", s.s3Prefix+key).
			Msg("failed to save to S3, falling back to local file system")
	}

	return s.local.Save(ctx, key, records)
}

// Load reads from S3, or from local disk if that fails.
func (s *fallbackStore) Load(ctx context.Context, key string) ([]json.RawMessage, error) {
	if s.useS3() {
		records, err := s.s3.Load(ctx, s.s3Prefix+key)
		if err == nil {
			return records, nil
		}
		s.logger.Warn().
			Err(err).
			Str("s3_key", s.s3Prefix+key).
			Msg("failed to load from S3, falling back to local file system")
	} else {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_store", s.s3 != nil).
			Msg("S3 disabled or not configured, using local file system")
	}

	return s.local.Load(ctx, key)
}
