package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/finlink/pkg/jwtx"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
)

// SessionChecker reports whether a session id is still live. Logging out
// tears the session down even though its token has not expired yet.
type SessionChecker func(ctx context.Context, sessionID string) bool

// AuthnMiddleware verifies the bearer session token and injects the session
// id and claims into the request context.
func AuthnMiddleware(v jwtx.Verifier, live SessionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			switch {
			case errors.Is(err, jwtx.ErrExpired):
				writeBearerError(w, "token expired")
				return
			case err != nil:
				writeBearerError(w, "token verification failed")
				log.Warn("session token rejected", "err", err)
				return
			}

			if live != nil && !live(ctx, claims.SID) {
				writeBearerError(w, "session ended")
				return
			}

			ctx = context.WithValue(ctx, CtxKeySessionID, claims.SID)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			ctx = slogx.WithAttrs(ctx, "sid", claims.SID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
