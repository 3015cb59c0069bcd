package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"subhub/internal/errors"
	"subhub/internal/service"
)

// EnrollmentHandler handles customer enrollment endpoints.
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// EnrollRequest represents an enrollment payload.
type EnrollRequest struct {
	CustomerID uint   `json:"customer_id" validate:"required"`
	ServiceID  uint   `json:"service_id" validate:"required"`
	Plan       string `json:"plan" validate:"required"`
}

// UpdatePlanRequest represents an in-place plan change for an enrollment.
type UpdatePlanRequest struct {
	CustomerID uint           `json:"customer_id" validate:"required"`
	ServiceID  uint           `json:"service_id" validate:"required"`
	NewPlan    string         `json:"new_plan" validate:"required"`
	Features   datatypes.JSON `json:"features" validate:"required"`
}

// PlanNameResponse carries a customer's current plan for a service.
type PlanNameResponse struct {
	PlanName string `json:"plan_name"`
}

// Enroll godoc
// @Summary Enroll a customer in a service plan
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body EnrollRequest true "Enrollment data"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customer-service/enroll [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	var req EnrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.enrollmentService.Enroll(c.Request().Context(), req.CustomerID, req.ServiceID, req.Plan); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Success", Message: "Service enrolled successfully"})
}

// CurrentPlan godoc
// @Summary Get a customer's current plan for a service
// @Tags enrollments
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Param service_id path int true "Service ID"
// @Success 200 {object} PlanNameResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customer-service/{customer_id}/service/{service_id} [get]
func (h *EnrollmentHandler) CurrentPlan(c echo.Context) error {
	customerID, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}
	serviceID, err := strconv.Atoi(c.Param("service_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service id")
	}

	planName, err := h.enrollmentService.CurrentPlan(c.Request().Context(), uint(customerID), uint(serviceID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PlanNameResponse{PlanName: planName})
}

// UpdatePlan godoc
// @Summary Change the plan on an enrollment in place
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body UpdatePlanRequest true "Plan change"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customer-service/update [put]
func (h *EnrollmentHandler) UpdatePlan(c echo.Context) error {
	var req UpdatePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.enrollmentService.UpdatePlan(c.Request().Context(), req.CustomerID, req.ServiceID, req.NewPlan, req.Features); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Success"})
}

// CustomerDetails godoc
// @Summary Get a customer with their enrolled services
// @Tags customers
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Success 200 {object} service.CustomerDetails
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customer/{customer_id} [get]
func (h *EnrollmentHandler) CustomerDetails(c echo.Context) error {
	customerID, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	details, err := h.enrollmentService.CustomerDetails(c.Request().Context(), uint(customerID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, details)
}

// ListCustomers godoc
// @Summary List customer accounts
// @Tags customers
// @Produce json
// @Success 200 {array} service.CustomerSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [get]
func (h *EnrollmentHandler) ListCustomers(c echo.Context) error {
	customers, err := h.enrollmentService.ListCustomers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, customers)
}

// RemoveByService godoc
// @Summary Delete all enrollments for a service
// @Tags enrollments
// @Produce json
// @Param service_id path int true "Service ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customer-services/{service_id} [delete]
func (h *EnrollmentHandler) RemoveByService(c echo.Context) error {
	serviceID, err := strconv.Atoi(c.Param("service_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service id")
	}

	// Keyed by service id only: this removes the service's enrollments for
	// every customer, matching the shipped API.
	if err := h.enrollmentService.RemoveByService(c.Request().Context(), uint(serviceID)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Service deleted successfully"})
}
