package http

import (
	"context"
	"net/http"
	"strings"

	"rentaldesk-backend/internal/security"
)

type contextKey string

const adminIDKey contextKey = "admin_id"

// AdminAuthMiddleware validates the bearer token and stores the admin id in
// the request context as the actor for review operations.
func AdminAuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token", Kind: "unauthorized"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey, claims.AdminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminIDFrom returns the authenticated admin id, or 0 when the request did
// not pass through the auth middleware.
func adminIDFrom(ctx context.Context) int32 {
	if id, ok := ctx.Value(adminIDKey).(int32); ok {
		return id
	}
	return 0
}
