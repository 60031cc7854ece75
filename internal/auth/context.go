package auth

import (
	"context"

	"github.com/labstack/echo/v4"

	"courseapi/internal/model"
)

const userContextKey = "user"

type ctxKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the authenticated user bound by BasicAuth.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*model.User)
	return user, ok && user != nil
}

// CurrentUser returns the authenticated user from the echo context.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	if ok && user != nil {
		return user, true
	}
	return UserFromContext(c.Request().Context())
}
