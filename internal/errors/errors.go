package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when a registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrServiceNotFound is returned when a service is not found.
	ErrServiceNotFound = errors.New("service not found")
	// ErrPlanNotFound is returned when a plan is not found for a service.
	ErrPlanNotFound = errors.New("plan not found for the specified service")
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrEnrollmentNotFound is returned when a customer has no enrollment for a service.
	ErrEnrollmentNotFound = errors.New("service not found for this customer")
	// ErrNoCustomers is returned when the customer listing is empty.
	ErrNoCustomers = errors.New("no customers found")
	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid data provided")
)

// ErrorResponse is the standardized error body. The Error field keeps the
// capitalized key the original API exposed; existing clients parse it.
type ErrorResponse struct {
	Error string `json:"Error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Failure class is always
// signaled through the status code, never through a 200 body.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrServiceNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SERVICE_NOT_FOUND")
	case errors.Is(err, ErrPlanNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PLAN_NOT_FOUND")
	case errors.Is(err, ErrCustomerNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CUSTOMER_NOT_FOUND")
	case errors.Is(err, ErrEnrollmentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ENROLLMENT_NOT_FOUND")
	case errors.Is(err, ErrNoCustomers):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_CUSTOMERS")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
