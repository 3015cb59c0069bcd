package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"subhub/internal/errors"
	"subhub/internal/service"
)

// CatalogHandler handles service and plan catalog endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateServiceRequest represents a service creation payload.
type CreateServiceRequest struct {
	ServiceName string              `json:"service_name" validate:"required"`
	Plans       []service.PlanInput `json:"plans" validate:"required,min=1,dive"`
}

// UpdateServiceRequest represents a plan replacement payload.
type UpdateServiceRequest struct {
	Plans []service.PlanInput `json:"plans" validate:"dive"`
}

// ExistsResponse reports a service existence probe result.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// FeaturesResponse carries one plan's opaque feature set.
type FeaturesResponse struct {
	Features datatypes.JSON `json:"features"`
}

// CreateService godoc
// @Summary Create a service with its plans
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body CreateServiceRequest true "Service and plans"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /createservice [post]
func (h *CatalogHandler) CreateService(c echo.Context) error {
	var req CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.catalogService.CreateService(c.Request().Context(), req.ServiceName, req.Plans); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Service created successfully"})
}

// CheckService godoc
// @Summary Check whether a service name exists
// @Tags catalog
// @Produce json
// @Param service_name query string true "Service name"
// @Success 200 {object} ExistsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /checkservice [get]
func (h *CatalogHandler) CheckService(c echo.Context) error {
	name := c.QueryParam("service_name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "service_name is required")
	}

	exists, err := h.catalogService.ServiceExists(c.Request().Context(), name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, ExistsResponse{Exists: exists})
}

// GetServices godoc
// @Summary List services with plans keyed by plan name
// @Tags catalog
// @Produce json
// @Success 200 {array} service.ServiceWithPlans
// @Failure 500 {object} errors.ErrorResponse
// @Router /getservices [get]
func (h *CatalogHandler) GetServices(c echo.Context) error {
	services, err := h.catalogService.ListServicesWithPlans(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, services)
}

// UpdateService godoc
// @Summary Replace a service's plans
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param request body UpdateServiceRequest true "New plan set"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /updateservice/{id} [put]
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.catalogService.ReplaceServicePlans(c.Request().Context(), uint(id), req.Plans); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Service plans updated successfully"})
}

// DeleteService godoc
// @Summary Delete a service and its plans
// @Tags catalog
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /deleteservice/{id} [delete]
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.catalogService.DeleteService(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Service deleted successfully"})
}

// ListServices godoc
// @Summary List services (raw)
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Service
// @Failure 500 {object} errors.ErrorResponse
// @Router /services [get]
func (h *CatalogHandler) ListServices(c echo.Context) error {
	services, err := h.catalogService.ListServices(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, services)
}

// ListPlans godoc
// @Summary List plans (raw)
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Plan
// @Failure 500 {object} errors.ErrorResponse
// @Router /plans [get]
func (h *CatalogHandler) ListPlans(c echo.Context) error {
	plans, err := h.catalogService.ListPlans(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, plans)
}

// PlanFeatures godoc
// @Summary Get a plan's feature set within a service
// @Tags catalog
// @Produce json
// @Param planId path string true "Plan name"
// @Param serviceId path int true "Service ID"
// @Success 200 {object} FeaturesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /plans/{planId}/service/{serviceId} [get]
func (h *CatalogHandler) PlanFeatures(c echo.Context) error {
	// The path segment is named planId but carries the plan name; the
	// original API shipped that way and clients depend on it.
	planName := c.Param("planId")
	serviceID, err := strconv.Atoi(c.Param("serviceId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service id")
	}

	features, err := h.catalogService.PlanFeatures(c.Request().Context(), uint(serviceID), planName)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, FeaturesResponse{Features: features})
}
