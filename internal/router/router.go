package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"subhub/internal/auth"
	"subhub/internal/config"
	"subhub/internal/errors"
	"subhub/internal/handler"
	"subhub/internal/model"
	"subhub/internal/service"
)

// Register wires routes and middleware. Route paths and their auth
// requirements mirror the shipped API, including routes that are
// intentionally left open (plan replacement, customer detail reads).
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	enrollmentHandler *handler.EnrollmentHandler,
	archiveHandler *handler.ArchiveHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	session := SessionMiddleware(cfg, jwtService)
	admin := RequireAdmin(authService)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/checkservice", catalogHandler.CheckService)
	e.GET("/getservices", catalogHandler.GetServices)
	e.PUT("/updateservice/:id", catalogHandler.UpdateService)
	e.GET("/services", catalogHandler.ListServices)
	e.GET("/plans", catalogHandler.ListPlans)
	e.GET("/plans/:planId/service/:serviceId", catalogHandler.PlanFeatures)
	e.GET("/customer/:customer_id", enrollmentHandler.CustomerDetails)
	e.GET("/customer-service/:customer_id/service/:service_id", enrollmentHandler.CurrentPlan)
	e.PUT("/customer-service/update", enrollmentHandler.UpdatePlan)
	e.GET("/archives", archiveHandler.ListArchives)

	// Session routes
	e.GET("/", authHandler.Me, session)
	e.POST("/customer-service/enroll", enrollmentHandler.Enroll, session)
	e.POST("/archive", archiveHandler.Archive, session)
	e.DELETE("/customer-services/:service_id", enrollmentHandler.RemoveByService, session)

	// Session + admin routes
	e.GET("/customers", enrollmentHandler.ListCustomers, session, admin)
	e.POST("/createservice", catalogHandler.CreateService, session, admin)
	e.DELETE("/deleteservice/:id", catalogHandler.DeleteService, session, admin)
	e.DELETE("/customer/:id", archiveHandler.RemoveCustomer, session, admin)
}

// SessionMiddleware validates the session cookie and stores the decoded
// claims in the context. Missing or invalid tokens are a 401, never a 200
// with an error body.
func SessionMiddleware(cfg *config.Config, jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + cfg.SessionCookie,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "you are not authenticated",
				Code:  "NOT_AUTHENTICATED",
			})
		},
	})
}

// RequireAdmin re-fetches the user row and checks the role there instead of
// trusting the token claim, so a demoted admin is locked out without waiting
// for token expiry. The cost is one extra store read per admin-gated call.
func RequireAdmin(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := handler.SessionClaims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "you are not authenticated",
					Code:  "NOT_AUTHENTICATED",
				})
			}

			user, err := authService.GetUser(c.Request().Context(), claims.UserID)
			if err != nil || user.Role != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "access denied, admin only",
					Code:  "ADMIN_ONLY",
				})
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
