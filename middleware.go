package main

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireAuth wraps a handler so it only runs for requests carrying a valid
// bearer token. The Authorization header must start with the literal
// "Bearer " prefix; anything else is rejected before token verification.
// On success the subject identity is placed in the request context for the
// wrapped handler to read. Token contents are never logged.
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			h.writeError(w, ErrMissingAuth)
			return
		}

		identity, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			h.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// IdentityFromContext returns the identity bound by RequireAuth, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
