package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"llm-lms/backend/internal/auth"
	"llm-lms/backend/internal/blobstore"
	"llm-lms/backend/internal/config"
	"llm-lms/backend/internal/repository"
)

// Clients holds the external backends. They are connected at most once;
// a backend that cannot be reached degrades to its disabled variant so the
// HTTP surface stays up.
type Clients struct {
	cfg    *config.Config
	logger *slog.Logger

	once     sync.Once
	docs     repository.DocumentStore
	blobs    blobstore.Store
	verifier auth.TokenVerifier
}

func NewClients(cfg *config.Config, logger *slog.Logger) *Clients {
	if logger == nil {
		logger = slog.Default()
	}
	return &Clients{cfg: cfg, logger: logger}
}

// EnsureInitialized connects every backend on first use. Later calls are no-ops.
func (c *Clients) EnsureInitialized(ctx context.Context) {
	c.once.Do(func() { c.init(ctx) })
}

func (c *Clients) init(ctx context.Context) {
	docs, err := repository.Open(ctx, repository.Options{
		Driver:       c.cfg.DocStoreDriver,
		DatabasePath: c.cfg.DatabasePath,
		MongoURI:     c.cfg.MongoURI,
		RedisAddr:    c.cfg.RedisAddr,
	}, c.logger)
	if err != nil {
		c.logger.Error("Document store unavailable, records will be discarded", "driver", c.cfg.DocStoreDriver, "error", err)
		docs = repository.NewNoneRepository(c.logger)
	} else {
		c.logger.Info("Document store ready", "driver", c.cfg.DocStoreDriver)
	}
	c.docs = docs

	blobs, err := blobstore.Open(ctx, blobstore.Options{
		Driver:              c.cfg.BlobStoreDriver,
		Bucket:              c.cfg.BlobBucket,
		GCSEmulatorHost:     c.cfg.GCSEmulatorHost,
		GCSSignerEmail:      c.cfg.GCSSignerEmail,
		GCSSignerPrivateKey: c.cfg.GCSSignerPrivateKey,
		S3Region:            c.cfg.S3Region,
		S3Endpoint:          c.cfg.S3Endpoint,
		S3UsePathStyle:      c.cfg.S3UsePathStyle,
	}, c.logger)
	if err != nil {
		c.logger.Error("Blob store unavailable, uploads will fail", "driver", c.cfg.BlobStoreDriver, "error", err)
		blobs = blobstore.NoneStore{}
	} else {
		c.logger.Info("Blob store ready", "driver", c.cfg.BlobStoreDriver)
	}
	c.blobs = blobs

	if c.cfg.AuthProjectID == "" && c.cfg.AuthIssuer == "" {
		c.logger.Warn("No identity project configured, only the demo token is accepted")
		return
	}
	verifier, err := auth.NewJWKSVerifier(auth.JWKSConfig{
		JWKSURL:  c.cfg.AuthJWKSURL,
		Issuer:   c.cfg.Issuer(),
		Audience: c.cfg.AuthProjectID,
	})
	if err != nil {
		c.logger.Error("Token verifier unavailable, only the demo token is accepted", "error", err)
		return
	}
	c.verifier = verifier
}

func (c *Clients) DocumentStore() repository.DocumentStore { return c.docs }

func (c *Clients) BlobStore() blobstore.Store { return c.blobs }

// Verifier returns nil when no identity project is configured.
func (c *Clients) Verifier() auth.TokenVerifier { return c.verifier }

// Close releases every connected backend.
func (c *Clients) Close() error {
	var errs []error
	if c.docs != nil {
		errs = append(errs, c.docs.Close())
	}
	if c.blobs != nil {
		errs = append(errs, c.blobs.Close())
	}
	return errors.Join(errs...)
}
