package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/model"
)

// TokenVerifier validates a bearer token and returns the subject it was issued to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (model.UserIdentity, error)
}

// VerifierFunc adapts a function to TokenVerifier.
type VerifierFunc func(ctx context.Context, token string) (model.UserIdentity, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (model.UserIdentity, error) {
	return f(ctx, token)
}

// Resolver derives the caller identity from the Authorization header. No state
// is kept between calls.
type Resolver struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

// NewResolver builds a Resolver. A nil verifier means only demo mode works:
// every real token is rejected.
func NewResolver(verifier TokenVerifier, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{verifier: verifier, logger: logger.With("component", "auth")}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// Any other header form yields "".
func BearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return header[len(prefix):]
}

// Resolve returns the mock identity for an absent token or the mock sentinel,
// and otherwise asks the verifier. Every failure, including a panic inside the
// verifier, is reported as app_errors.ErrAuth without the verifier's detail.
func (r *Resolver) Resolve(ctx context.Context, header string) (id model.UserIdentity, err error) {
	token := BearerToken(header)
	if token == "" || token == model.MockToken {
		return model.MockIdentity, nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Token verification panicked", "panic", fmt.Sprint(rec))
			id, err = "", app_errors.ErrAuth
		}
	}()

	if r.verifier == nil {
		r.logger.Debug("Rejecting bearer token: no verifier configured")
		return "", app_errors.ErrAuth
	}

	uid, vErr := r.verifier.Verify(ctx, token)
	if vErr != nil {
		r.logger.Debug("Token verification failed", "error", vErr)
		return "", app_errors.ErrAuth
	}
	if uid == "" {
		return "", app_errors.ErrAuth
	}
	return uid, nil
}
