package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSConfig configures the Cloud Storage driver.
type GCSConfig struct {
	Bucket string
	// EmulatorHost points the client at a local fake-gcs-server.
	EmulatorHost string
	// SignerEmail and SignerKeyPEM sign URLs explicitly. When empty the
	// client's own service account credentials are used.
	SignerEmail  string
	SignerKeyPEM string
}

type gcsStore struct {
	log    *slog.Logger
	client *storage.Client
	bucket string
	signer GCSConfig
}

// NewGCSStore creates a storage client with credentials from the environment,
// or without authentication when an emulator host is configured.
func NewGCSStore(ctx context.Context, cfg GCSConfig, logger *slog.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("blobstore: missing bucket name for gcs driver")
	}

	var opts []option.ClientOption
	if endpoint := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"); endpoint != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", endpoint)
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(clientOptionsFromEnv(), option.WithScopes(storage.ScopeReadWrite))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return newGCSStoreWithClient(client, cfg, logger), nil
}

func newGCSStoreWithClient(client *storage.Client, cfg GCSConfig, logger *slog.Logger) *gcsStore {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Blob store initialized", "driver", DriverGCS, "bucket", cfg.Bucket, "emulator_host", cfg.EmulatorHost)
	return &gcsStore{
		log:    logger.With("component", "blobstore", "driver", DriverGCS),
		client: client,
		bucket: cfg.Bucket,
		signer: cfg,
	}
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func (s *gcsStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	s.log.Debug("Uploaded object", "key", key, "size", len(data))
	return key, nil
}

// maxV4TTL is the longest expiry GCS accepts for a V4 signature.
const maxV4TTL = 7 * 24 * time.Hour

// SignURL returns a V4 signed GET URL. ttl is capped at seven days.
func (s *gcsStore) SignURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if ttl > maxV4TTL {
		ttl = maxV4TTL
	}
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
	}
	if s.signer.SignerEmail != "" && s.signer.SignerKeyPEM != "" {
		opts.GoogleAccessID = s.signer.SignerEmail
		opts.PrivateKey = []byte(s.signer.SignerKeyPEM)
	}
	u, err := s.client.Bucket(s.bucket).SignedURL(key, opts)
	if err != nil {
		return "", fmt.Errorf("failed to sign GCS url: %w", err)
	}
	return u, nil
}

func (s *gcsStore) Close() error {
	return s.client.Close()
}
