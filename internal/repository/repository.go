package repository

import (
	"context"
	"fmt"
	"log/slog"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/model"
)

// DocumentStore appends write-once records into per-user collections.
// Records are never read back by this service.
type DocumentStore interface {
	Append(ctx context.Context, userID model.UserIdentity, collection string, record any) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

// Options selects and configures a document store driver.
type Options struct {
	Driver       string
	DatabasePath string
	MongoURI     string
	RedisAddr    string
}

// Open connects the configured driver.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (DocumentStore, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return OpenSQLite(opts.DatabasePath)
	case DriverMongo:
		return ConnectMongo(ctx, opts.MongoURI)
	case DriverRedis:
		return ConnectRedis(ctx, opts.RedisAddr)
	case DriverNone:
		return NewNoneRepository(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", app_errors.ErrPersistence, op, err)
}

type noneRepository struct {
	logger *slog.Logger
}

// NewNoneRepository returns a store that discards every record.
func NewNoneRepository(logger *slog.Logger) DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &noneRepository{logger: logger}
}

func (r *noneRepository) Append(_ context.Context, userID model.UserIdentity, collection string, _ any) error {
	r.logger.Debug("Document store disabled, dropping record", "user_id", string(userID), "collection", collection)
	return nil
}

func (r *noneRepository) Close() error { return nil }
