package router

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"courseapi/internal/auth"
	apperrors "courseapi/internal/errors"
	"courseapi/internal/handler"
	"courseapi/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	verifier auth.Verifier,
	userHandler *handler.UserHandler,
	courseHandler *handler.CourseHandler,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(middleware.Recover())

	e.Validator = validation.New()
	e.HTTPErrorHandler = errorHandler(e)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, apperrors.ErrorResponse{Message: "Welcome to the REST API project!"})
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	basicAuth := auth.BasicAuth(verifier)

	// Users
	api.GET("/users", userHandler.GetCurrentUser, basicAuth)
	api.POST("/users", userHandler.CreateUser)

	// Courses
	api.GET("/courses", courseHandler.ListCourses)
	api.GET("/courses/:id", courseHandler.GetCourse)
	api.POST("/courses", courseHandler.CreateCourse, basicAuth)
	api.PUT("/courses/:id", courseHandler.UpdateCourse, basicAuth)
	api.DELETE("/courses/:id", courseHandler.DeleteCourse, basicAuth)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("latency_ms", v.Latency.Milliseconds()),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			slog.LogAttrs(c.Request().Context(), level, "http_request", attrs...)
			return nil
		},
	})
}
