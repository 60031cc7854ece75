package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "courseapi/internal/errors"
	"courseapi/internal/model"
)

// Verifier resolves submitted credentials to a user.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*model.User, error)
}

// BasicAuth gates a route behind HTTP Basic credentials.
// Every rejection answers 401 Access Denied; the reason is only logged.
// Verifier errors other than a rejection are passed on and end up as 500.
func BasicAuth(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()

			email, password, ok := req.BasicAuth()
			if !ok {
				slog.WarnContext(ctx, "authorization header not found", "path", req.URL.Path)
				return accessDenied()
			}

			user, err := verifier.Verify(ctx, email, password)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) || errors.Is(err, apperrors.ErrBadCredentials) {
					return accessDenied()
				}
				return err
			}

			c.Set(userContextKey, user)
			c.SetRequest(req.WithContext(WithUser(ctx, user)))
			return next(c)
		}
	}
}

func accessDenied() error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Message: apperrors.MsgAccessDenied,
	})
}
