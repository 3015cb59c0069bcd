package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"subhub/internal/errors"
	"subhub/internal/service"
)

// ArchiveHandler handles enrollment archiving and customer removal.
type ArchiveHandler struct {
	archiveService service.ArchiveService
}

// NewArchiveHandler creates a new archive handler.
func NewArchiveHandler(archiveService service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService}
}

// ArchiveRequest identifies the enrollment to archive.
type ArchiveRequest struct {
	CustomerID uint `json:"customer_id" validate:"required"`
	ServiceID  uint `json:"service_id" validate:"required"`
}

// Archive godoc
// @Summary Archive a customer's enrollment
// @Tags archive
// @Accept json
// @Produce json
// @Param request body ArchiveRequest true "Enrollment to archive"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /archive [post]
func (h *ArchiveHandler) Archive(c echo.Context) error {
	var req ArchiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Archiving does not remove the enrollment; termination is a separate
	// call the client issues afterwards.
	if _, err := h.archiveService.Archive(c.Request().Context(), req.CustomerID, req.ServiceID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Service archived successfully"})
}

// RemoveCustomer godoc
// @Summary Remove a customer, archiving their enrollments first
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customer/{id} [delete]
func (h *ArchiveHandler) RemoveCustomer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.archiveService.RemoveCustomer(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Customer removed successfully"})
}

// ListArchives godoc
// @Summary List all archived enrollments
// @Tags archive
// @Produce json
// @Success 200 {array} model.Archive
// @Failure 500 {object} errors.ErrorResponse
// @Router /archives [get]
func (h *ArchiveHandler) ListArchives(c echo.Context) error {
	archives, err := h.archiveService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, archives)
}
