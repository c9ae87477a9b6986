package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagekeep/pagekeep-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// sessionIDKey is the context key for the authenticated admin session ID.
const sessionIDKey ctxKey = "sessionID"

// GetSessionID returns the authenticated session ID from context.
// Returns 401 error if no live session is attached to the request.
func GetSessionID(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	if !ok || sessionID == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return sessionID, nil
}

// setSessionID stores the session ID in context.
func setSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// authMiddleware returns a middleware that validates Bearer tokens and
// stores the session ID in context. If no token is present or it is
// invalid, the request continues without a session; handlers reject it
// via RequireAdmin where authentication is required.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			token := authHeader[7:]
			session, err := auth.Verify(r.Context(), token)
			if err != nil {
				// Invalid token - continue without session (handler will reject if auth required)
				next.ServeHTTP(w, r)
				return
			}

			ctx := setSessionID(r.Context(), session.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin validates the request carries a live admin session.
// Returns the session ID if successful, error otherwise. The single
// admin account is the only principal, so a live session is sufficient.
func (s *Server) RequireAdmin(ctx context.Context) (string, error) {
	return GetSessionID(ctx)
}

// bearerToken extracts the raw token from an Authorization header.
func bearerToken(authHeader string) string {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return authHeader[7:]
}
