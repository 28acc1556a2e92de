package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"usermetrics/internal/errors"
	"usermetrics/internal/service"
)

// ActivityHandler handles activity log endpoints.
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// LogActivityRequest represents an activity log payload.
type LogActivityRequest struct {
	ActivityType string `json:"activity_type" validate:"required"`
	Details      string `json:"details"`
}

// GetUserActivity godoc
// @Summary Get user activity log and summary
// @Tags activity
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} service.ActivityData
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{userId}/activity [get]
func (h *ActivityHandler) GetUserActivity(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid user ID"})
	}

	data, err := h.activityService.GetUserActivity(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, data)
}

// LogActivity godoc
// @Summary Log a new user activity
// @Tags activity
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body LogActivityRequest true "Activity data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{userId}/activity/log [post]
func (h *ActivityHandler) LogActivity(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid user ID"})
	}

	var req LogActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}

	if err := h.activityService.RecordActivity(c.Request().Context(), userID, req.ActivityType, req.Details); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Activity logged successfully"})
}
