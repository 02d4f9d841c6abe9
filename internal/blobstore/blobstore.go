// Package blobstore stores uploaded files and hands out time-limited
// retrieval URLs for them.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Store is the blob store used by the upload flow.
type Store interface {
	// Put stores data under key and returns the storage key to sign.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// SignURL returns a GET URL for key valid for ttl.
	SignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Close() error
}

// ErrNotConfigured is returned by every operation of the disabled store.
var ErrNotConfigured = errors.New("blobstore: no blob store configured")

// Driver names accepted by Open.
const (
	DriverGCS  = "gcs"
	DriverS3   = "s3"
	DriverNone = "none"
)

// Options selects and configures a blob store driver.
type Options struct {
	Driver string
	Bucket string

	GCSEmulatorHost     string
	GCSSignerEmail      string
	GCSSignerPrivateKey string

	S3Region       string
	S3Endpoint     string
	S3UsePathStyle bool
}

// Open builds the configured driver.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch opts.Driver {
	case DriverGCS:
		return NewGCSStore(ctx, GCSConfig{
			Bucket:       opts.Bucket,
			EmulatorHost: opts.GCSEmulatorHost,
			SignerEmail:  opts.GCSSignerEmail,
			SignerKeyPEM: opts.GCSSignerPrivateKey,
		}, logger)
	case DriverS3:
		return ConnectS3(ctx, S3Config{
			Bucket:       opts.Bucket,
			Region:       opts.S3Region,
			Endpoint:     opts.S3Endpoint,
			UsePathStyle: opts.S3UsePathStyle,
		}, logger)
	case DriverNone, "":
		return NoneStore{}, nil
	default:
		return nil, fmt.Errorf("blobstore: unknown driver %q", opts.Driver)
	}
}

// NoneStore rejects every operation with ErrNotConfigured.
type NoneStore struct{}

func (NoneStore) Put(context.Context, string, []byte, string) (string, error) {
	return "", ErrNotConfigured
}

func (NoneStore) SignURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrNotConfigured
}

func (NoneStore) Close() error { return nil }
