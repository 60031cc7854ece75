package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"courseapi/internal/auth"
	apperrors "courseapi/internal/errors"
	"courseapi/internal/model"
	"courseapi/internal/service"
	"courseapi/internal/validation"
)

const (
	msgCourseNotFound      = "Sorry, can't find the course you're looking for"
	msgEditMissingCourse   = "Sorry, you can't edit the course that doesn't exist."
	msgDeleteMissingCourse = "Sorry, you can't delete the course that doesn't exist."
	msgEditNotOwner        = "Sorry, you can only edit the course that you own."
	msgDeleteNotOwner      = "Sorry, you can only delete the course that you own."
	msgEmptyUpdate         = `Please provide "title" and "description" and their values in request body to update the course.`
)

// CourseHandler handles course endpoints.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourseRequest represents a course creation request.
// The owner is always the authenticated user.
type CreateCourseRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
}

// Rules lists the creation checks in reporting order.
func (r CreateCourseRequest) Rules() []validation.Rule {
	return []validation.Rule{
		{Value: r.Title, Tag: "notblank", Message: `Please provide a value for "title"`},
		{Value: r.Description, Tag: "notblank", Message: `Please provide a value for "description"`},
	}
}

// UpdateCourseRequest represents a partial course update.
type UpdateCourseRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// Rules checks only the supplied required fields.
func (r UpdateCourseRequest) Rules() []validation.Rule {
	var rules []validation.Rule
	if r.Title != nil {
		rules = append(rules, validation.Rule{Value: *r.Title, Tag: "notblank", Message: `Please provide a value for "title"`})
	}
	if r.Description != nil {
		rules = append(rules, validation.Rule{Value: *r.Description, Tag: "notblank", Message: `Please provide a value for "description"`})
	}
	return rules
}

func (r UpdateCourseRequest) changes() model.CourseChanges {
	return model.CourseChanges{
		Title:           r.Title,
		Description:     r.Description,
		EstimatedTime:   r.EstimatedTime,
		MaterialsNeeded: r.MaterialsNeeded,
	}
}

func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: message})
}

func forbidden(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{Message: message})
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ListCourses godoc
// @Summary List courses with their owners
// @Tags courses
// @Produce json
// @Success 200 {array} model.Course
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c echo.Context) error {
	courses, err := h.courseService.ListCourses(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Get course by id
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(msgCourseNotFound)
	}

	course, err := h.courseService.GetCourse(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return badRequest(msgCourseNotFound)
		}
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, course)
}

// CreateCourse godoc
// @Summary Create a course owned by the authenticated user
// @Tags courses
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param course body CreateCourseRequest true "Course payload"
// @Success 201 "Created, Location: /api/courses/{id}"
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: apperrors.MsgAccessDenied})
	}

	var req CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(apperrors.MsgInvalidRequest)
	}
	if err := c.Validate(req); err != nil {
		return toHTTPError(err)
	}

	course, err := h.courseService.CreateCourse(c.Request().Context(), user.ID, &model.Course{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
	})
	if err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/courses/%d", course.ID))
	return c.NoContent(http.StatusCreated)
}

// UpdateCourse godoc
// @Summary Update a course the authenticated user owns
// @Tags courses
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "Course ID"
// @Param course body UpdateCourseRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: apperrors.MsgAccessDenied})
	}

	id, ok := parseID(c)
	if !ok {
		return badRequest(msgEditMissingCourse)
	}

	req, err := decodeUpdate(c.Request().Body)
	if err != nil {
		return badRequest(apperrors.MsgInvalidRequest)
	}
	changes := req.changes()
	if changes.IsEmpty() {
		return badRequest(msgEmptyUpdate)
	}

	// only the owner gets to see field errors
	ctx := c.Request().Context()
	if err := h.courseService.AuthorizeChange(ctx, user.ID, id); err != nil {
		return editError(err)
	}
	if err := c.Validate(req); err != nil {
		return toHTTPError(err)
	}

	if err := h.courseService.UpdateCourse(ctx, user.ID, id, changes); err != nil {
		return editError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func editError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return badRequest(msgEditMissingCourse)
	case errors.Is(err, apperrors.ErrNotCourseOwner):
		return forbidden(msgEditNotOwner)
	default:
		return toHTTPError(err)
	}
}

// DeleteCourse godoc
// @Summary Delete a course the authenticated user owns
// @Tags courses
// @Produce json
// @Security BasicAuth
// @Param id path int true "Course ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: apperrors.MsgAccessDenied})
	}

	id, ok := parseID(c)
	if !ok {
		return badRequest(msgDeleteMissingCourse)
	}

	err := h.courseService.DeleteCourse(c.Request().Context(), user.ID, id)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return badRequest(msgDeleteMissingCourse)
	case errors.Is(err, apperrors.ErrNotCourseOwner):
		return forbidden(msgDeleteNotOwner)
	default:
		return toHTTPError(err)
	}
}

// decodeUpdate reads a JSON object body. An empty body decodes to an empty request.
func decodeUpdate(body io.Reader) (UpdateCourseRequest, error) {
	var req UpdateCourseRequest
	if body == nil {
		return req, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return req, err
	}
	if len(raw) == 0 {
		return req, nil
	}
	err = json.Unmarshal(raw, &req)
	return req, err
}
