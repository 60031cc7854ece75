package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUserNotFound is returned when no user matches the submitted email.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials is returned when the password does not match the stored hash.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already taken")
	// ErrCourseNotFound is returned when a course id does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrNotCourseOwner is returned when the caller does not own the course.
	ErrNotCourseOwner = errors.New("not the course owner")
)

// Client facing messages.
const (
	MsgAccessDenied   = "Access Denied"
	MsgEmailTaken     = "That email is already taken. Please try another."
	MsgRouteNotFound  = "Route Not Found"
	MsgInvalidRequest = "invalid request body"
)

// ValidationError carries one message per failed rule, in rule order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError, or nil when there are no messages.
func NewValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

// ErrorResponse represents a single-message error body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse represents a validation failure body.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// HTTPError represents an HTTP error with status code and body.
type HTTPError struct {
	StatusCode int
	Body       interface{}
}

func (e *HTTPError) Error() string {
	switch b := e.Body.(type) {
	case ErrorResponse:
		return b.Message
	case ValidationErrorResponse:
		return strings.Join(b.Errors, "; ")
	}
	return http.StatusText(e.StatusCode)
}

// NewHTTPError creates a new HTTP error with a single message body.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Body:       ErrorResponse{Message: message},
	}
}

// MapErrorToHTTP maps domain errors that have a single client facing shape.
// Course lookups and ownership carry per-route messages and are mapped by the handlers.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Body:       ValidationErrorResponse{Errors: verr.Messages},
		}
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, MsgEmailTaken)
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrBadCredentials):
		return NewHTTPError(http.StatusUnauthorized, MsgAccessDenied)
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
