// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/quipufin/factoring-backend/internal/api/response"
	"github.com/quipufin/factoring-backend/internal/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// RequireSession validates the Bearer token on protected routes and stores
// the authenticated user ID in the request context.
// Returns 401 Unauthorized when the token is missing, malformed, or expired.
func RequireSession(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.RespondError(w, http.StatusUnauthorized, "authorization required", "")
				return
			}

			userID, err := sessions.Verify(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "invalid or expired session", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID stores a user ID in the context the way RequireSession does.
// Exposed for handler tests that bypass the middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user ID stored by RequireSession.
// The empty string means the request did not pass through the middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
