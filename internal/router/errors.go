package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "courseapi/internal/errors"
)

// errorHandler renders unmatched routes as JSON 404s and unexpected errors as
// 500 carrying the raw error text. *echo.HTTPError values keep their body.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			he = echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{Message: err.Error()})
		}

		switch he.Code {
		case http.StatusNotFound:
			if _, isString := he.Message.(string); isString {
				he = echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{Message: apperrors.MsgRouteNotFound})
			}
		case http.StatusMethodNotAllowed:
			he = echo.NewHTTPError(http.StatusMethodNotAllowed, apperrors.ErrorResponse{Message: http.StatusText(http.StatusMethodNotAllowed)})
		}

		e.DefaultHTTPErrorHandler(he, c)
	}
}
