package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by the S3 store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner is the subset of *s3.PresignClient used by the S3 store.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Config configures the S3 driver.
type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	UsePathStyle bool
}

type s3Store struct {
	bucket    string
	s3Client  S3API
	presigner Presigner
	logger    *slog.Logger
}

// NewS3Store creates an S3-backed store.
func NewS3Store(client S3API, presigner Presigner, bucket string, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &s3Store{
		bucket:    bucket,
		s3Client:  client,
		presigner: presigner,
		logger:    logger.With("component", "blobstore", "driver", DriverS3),
	}
}

// ConnectS3 loads the default AWS configuration for cfg.Region and builds a store.
// A non-empty Endpoint targets an S3-compatible server such as MinIO or LocalStack.
func ConnectS3(ctx context.Context, cfg S3Config, logger *slog.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("blobstore: missing bucket name for s3 driver")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewS3Store(client, s3.NewPresignClient(client), cfg.Bucket, logger), nil
}

func (s *s3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.s3Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("blobstore: s3 put %s: %w", key, err)
	}
	s.logger.Debug("Uploaded object", "key", key, "size", len(data))
	return key, nil
}

func (s *s3Store) SignURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("blobstore: s3 presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *s3Store) Close() error { return nil }
