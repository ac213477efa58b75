package middleware

import (
	"context"
	"net/http"

	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/validation"
)

type contextKey string

// userIDKey is the context key the resolved user ID is stored under.
const userIDKey contextKey = "userID"

// RequireUser extracts the caller identity from the X-User-ID header set by
// the upstream authentication layer. Requests without a valid UUID in the
// header are rejected with 401 before reaching any handler.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")

		if userID == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication required", "Missing X-User-ID header")
			return
		}

		if err := validation.ValidateUUID(userID); err != nil {
			response.RespondError(w, http.StatusUnauthorized, "authentication required", "Invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user ID stored by RequireUser, or "" when
// the request did not pass through it.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the given user ID. Tests use this to
// call handlers directly without the middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
