package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"courseapi/internal/auth"
	apperrors "courseapi/internal/errors"
	"courseapi/internal/service"
	"courseapi/internal/validation"
)

// UserHandler bundles HTTP handlers for users.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// Rules lists the registration checks in reporting order.
func (r RegisterRequest) Rules() []validation.Rule {
	return []validation.Rule{
		{Value: r.FirstName, Tag: "notblank", Message: `Please provide a value for "firstName"`},
		{Value: r.LastName, Tag: "notblank", Message: `Please provide a value for "lastName"`},
		{Value: r.EmailAddress, Tag: "notblank", Message: `Please provide a value for "emailAddress"`},
		{Value: r.EmailAddress, Tag: "omitempty,emailformat", Message: "Please use the correct email format (example@email.com)"},
		{Value: r.Password, Tag: "required", Message: `Please provide a value for "password"`},
		{Value: r.Password, Tag: "omitempty,min=8,max=16", Message: "Password must be between 8 and 16 characters"},
	}
}

// CurrentUserResponse is the public view of the authenticated user.
type CurrentUserResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GetCurrentUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BasicAuth
// @Success 200 {object} CurrentUserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: apperrors.MsgAccessDenied})
	}
	return c.JSON(http.StatusOK, CurrentUserResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// CreateUser godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User payload"
// @Success 201 "Created, Location: /"
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: apperrors.MsgInvalidRequest})
	}

	if err := c.Validate(req); err != nil {
		return toHTTPError(err)
	}

	if _, err := h.svc.Register(c.Request().Context(), req.FirstName, req.LastName, req.EmailAddress, req.Password); err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/")
	return c.NoContent(http.StatusCreated)
}

// toHTTPError renders a domain error through errors.MapErrorToHTTP.
func toHTTPError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.Body).SetInternal(err)
}
