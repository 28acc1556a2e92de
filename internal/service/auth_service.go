package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"usermetrics/internal/auth"
	"usermetrics/internal/errors"
	"usermetrics/internal/model"
	"usermetrics/internal/repository"
)

// AuthService handles credential verification for the dashboard.
type AuthService interface {
	// Login verifies credentials, records a login activity and mints a
	// session token for the dashboard cookie.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// CurrentUser resolves the active user behind a session.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	activitySvc ActivityService
	jwtService  *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, activitySvc ActivityService, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:    userRepo,
		activitySvc: activitySvc,
		jwtService:  jwtService,
	}
}

// Login authenticates a user by email and password. Unknown email and wrong
// password produce the same error so callers cannot probe for accounts.
// Failed attempts are not logged.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := s.activitySvc.RecordActivity(ctx, user.ID, model.ActivityLogin, "User logged in"); err != nil {
		return nil, "", fmt.Errorf("record login activity: %w", err)
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	return user, token, nil
}

// CurrentUser returns the non-deleted user for the given id.
func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
