package middleware

import (
	"context"
	"net/http"
	"strings"

	pkgauth "github.com/aslanbekov/pcforge-backend/pkg/auth"
	"github.com/aslanbekov/pcforge-backend/pkg/auth/session"
	"github.com/aslanbekov/pcforge-backend/pkg/config"
)

// OptionalAuth seeds the context with claims when a valid bearer token is
// presented, and lets the request through anonymously otherwise.
func OptionalAuth(cfg config.JWTConfig, verifier session.AccessSessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil || claims.ID == "" {
				next.ServeHTTP(w, r)
				return
			}
			if verifier != nil {
				if ok, err := verifier.HasSession(r.Context(), claims.ID); err != nil || !ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxUsername, claims.Username)
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
			ctx = context.WithValue(ctx, ctxAccessID, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
