package middleware

import (
	"context"

	"inkwell/app/models"
)

type contextKey int

const userContextKey contextKey = iota

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser returns the authenticated user for this request, if any.
// There is no process-wide current user; login state lives only in the
// request context.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok && user != nil
}
