package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"subhub/internal/auth"
	errs "subhub/internal/errors"
	"subhub/internal/model"
	"subhub/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login, and session identity.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type authService struct {
	store      repository.Store
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(store repository.Store, jwtService *auth.JWTService) AuthService {
	return &authService{
		store:      store,
		jwtService: jwtService,
	}
}

// Register creates a customer account with a bcrypt-hashed password. The
// role is always customer; admins are never created through self-service.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errs.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleCustomer,
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a signed session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errs.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errs.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID, user.Name, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, user, nil
}

// GetUser fetches a user by ID. Admin gating re-reads the row through this
// method instead of trusting the role embedded in the token, so demotions
// take effect without re-login.
func (s *authService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCustomerNotFound
		}
		return nil, err
	}
	return user, nil
}
