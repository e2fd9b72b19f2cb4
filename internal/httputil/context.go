package httputil

import (
	"context"
	"net/http"

	"compendi/internal/models"
)

// Context key type to avoid collisions
type contextKey string

const userKey contextKey = "user"

// WithUser returns a request whose context carries the authenticated user.
func WithUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), userKey, user)
	return r.WithContext(ctx)
}

// GetUser retrieves the authenticated user from the request context.
// Returns nil for anonymous requests.
func GetUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}
