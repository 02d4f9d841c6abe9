package service

import (
	"context"
	"fmt"
	"log/slog"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/observability/metrics"
	"llm-lms/backend/internal/repository"
)

// PersistResult is the outcome of a best-effort log write. It is observed
// (logged and counted) but never returned to a caller as an error.
type PersistResult struct {
	Collection string
	Err        error
}

// OK reports whether the record was written.
func (r PersistResult) OK() bool { return r.Err == nil }

// recorder appends log records after a successful operation. A failed or
// panicking store never changes the outcome already computed.
type recorder struct {
	store   repository.DocumentStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func newRecorder(store repository.DocumentStore, m *metrics.Metrics, logger *slog.Logger) *recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &recorder{store: store, metrics: m, logger: logger}
}

// Record writes record into the user's collection. The write is detached from
// ctx cancellation so a client hanging up does not abort it.
func (r *recorder) Record(ctx context.Context, uid model.UserIdentity, collection string, record any) (res PersistResult) {
	res.Collection = collection
	if r.store == nil {
		return res
	}

	defer func() {
		if rec := recover(); rec != nil {
			res.Err = fmt.Errorf("%w: store panicked: %v", app_errors.ErrPersistence, rec)
		}
		if res.Err != nil {
			r.metrics.ObservePersistenceFailure(collection)
			r.logger.Warn("Best-effort log write failed", "collection", collection, "user_id", string(uid), "error", res.Err)
		}
	}()

	res.Err = r.store.Append(context.WithoutCancel(ctx), uid, collection, record)
	return res
}
