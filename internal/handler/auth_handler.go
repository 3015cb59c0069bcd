package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"subhub/internal/auth"
	"subhub/internal/errors"
	"subhub/internal/service"
)

// AuthHandler handles registration, login, logout, and identity echo.
type AuthHandler struct {
	authService service.AuthService
	cookieName  string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName}
}

// RegisterRequest represents a self-service signup. Only presence is
// validated; the API has never imposed a password policy or an email format
// check, and existing clients rely on that.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a login attempt.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StatusResponse is the generic success body. Field casing matches what the
// original API exposed.
type StatusResponse struct {
	Status  string `json:"Status"`
	Message string `json:"Message,omitempty"`
}

// LoginResponse carries the session identity back to the client alongside
// the cookie.
type LoginResponse struct {
	Status string `json:"Status"`
	Role   string `json:"role"`
	ID     uint   `json:"id"`
}

// IdentityResponse echoes the session holder's name.
type IdentityResponse struct {
	Status string `json:"Status"`
	Name   string `json:"name"`
}

// Register godoc
// @Summary Register a customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "Success"})
}

// Login godoc
// @Summary Login and receive a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionExpiry),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, LoginResponse{Status: "Success", Role: user.Role, ID: user.ID})
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Stateless: the cookie is expired client-side, the token itself stays
	// valid until its 24h expiry.
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, StatusResponse{Status: "Success"})
}

// Me godoc
// @Summary Echo the session identity
// @Tags auth
// @Produce json
// @Success 200 {object} IdentityResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router / [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := SessionClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "you are not authenticated",
			Code:  "NOT_AUTHENTICATED",
		})
	}
	return c.JSON(http.StatusOK, IdentityResponse{Status: "Success", Name: claims.Name})
}

// SessionClaims extracts the verified session claims set by the JWT middleware.
func SessionClaims(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get("user").(*auth.Claims)
	return claims, ok
}
