package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"usermetrics/internal/errors"
	"usermetrics/internal/report"
	"usermetrics/internal/service"
)

// ReportHandler handles PDF report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DownloadActivityReport godoc
// @Summary Download user activity report as PDF
// @Tags activity
// @Produce application/pdf
// @Param userId path string true "User ID"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{userId}/activity-pdf [get]
func (h *ReportHandler) DownloadActivityReport(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid user ID"})
	}

	data, err := h.reportService.BuildActivityReport(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Headers go out before the renderer starts writing body bytes; the PDF
	// streams to the client as it is composed.
	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=user-activity-%s.pdf", userID))
	c.Response().WriteHeader(http.StatusOK)

	return report.Render(c.Response(), data)
}
