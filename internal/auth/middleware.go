package auth

import (
	"context"
	"net/http"

	"llm-lms/backend/internal/model"
)

type contextKey string

const identityKey contextKey = "userIdentity"

// Middleware resolves the caller identity for every request and stores it in
// the request context. Unresolvable tokens get a generic 401.
func Middleware(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), uid)))
		})
	}
}

// WithIdentity returns a copy of ctx carrying uid.
func WithIdentity(ctx context.Context, uid model.UserIdentity) context.Context {
	return context.WithValue(ctx, identityKey, uid)
}

// IdentityFromContext retrieves the identity stored by Middleware.
func IdentityFromContext(ctx context.Context) (model.UserIdentity, bool) {
	uid, ok := ctx.Value(identityKey).(model.UserIdentity)
	return uid, ok
}
