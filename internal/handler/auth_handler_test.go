package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"subhub/internal/model"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *mockAuthService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &requestValidator{validate: validator.New()}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("accepts a one-character password", func(t *testing.T) {
		authService := new(mockAuthService)
		authService.On("Register", mock.Anything, "A", "a@x.com", "p").
			Return(&model.User{ID: 1, Name: "A", Email: "a@x.com", Role: model.RoleCustomer}, nil)

		h := NewAuthHandler(authService, "token")
		c, rec := postJSON("/register", `{"name":"A","email":"a@x.com","password":"p"}`)

		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"Status":"Success"}`, rec.Body.String())
		authService.AssertExpectations(t)
	})

	t.Run("does not format-check the email", func(t *testing.T) {
		authService := new(mockAuthService)
		authService.On("Register", mock.Anything, "B", "not-an-email", "pw").
			Return(&model.User{ID: 2, Name: "B", Email: "not-an-email", Role: model.RoleCustomer}, nil)

		h := NewAuthHandler(authService, "token")
		c, rec := postJSON("/register", `{"name":"B","email":"not-an-email","password":"pw"}`)

		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		authService.AssertExpectations(t)
	})

	t.Run("missing password is rejected before the service is called", func(t *testing.T) {
		authService := new(mockAuthService)

		h := NewAuthHandler(authService, "token")
		c, _ := postJSON("/register", `{"name":"A","email":"a@x.com"}`)

		err := h.Register(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		authService.AssertNotCalled(t, "Register")
	})
}
