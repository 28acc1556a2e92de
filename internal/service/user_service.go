package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"usermetrics/internal/cache"
	"usermetrics/internal/errors"
	"usermetrics/internal/model"
	"usermetrics/internal/repository"
)

const (
	bcryptCost = 10

	usersCacheKey = "users:active"
	usersCacheTTL = 30 * time.Second
)

// UserService exposes directory operations over the users table.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, name, email string, role model.Role) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, name, email string, role model.Role) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo            repository.UserRepository
	cache           *cache.Client
	defaultPassword string
}

// NewUserService builds a UserService. Users created through the directory
// get defaultPassword, hashed; they cannot choose one through this path.
func NewUserService(repo repository.UserRepository, cache *cache.Client, defaultPassword string) UserService {
	return &userService{repo: repo, cache: cache, defaultPassword: defaultPassword}
}

// ListUsers returns all non-deleted users, newest first. The full set is
// returned; paging and filtering happen client-side.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	if data, _ := s.cache.Get(ctx, usersCacheKey); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		_ = s.cache.Set(ctx, usersCacheKey, payload, usersCacheTTL)
	}
	return users, nil
}

// CreateUser creates a user with the configured default password.
func (s *userService) CreateUser(ctx context.Context, name, email string, role model.Role) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hashed),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Constraint violations (duplicate email included) surface as a
		// generic internal error, matching the original behavior.
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, usersCacheKey)
	return user, nil
}

// UpdateUser updates name, email and role of a non-deleted user. The
// password is immutable through the public API.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, name, email string, role model.Role) (*model.User, error) {
	user, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user.Name = name
	user.Email = email
	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, usersCacheKey)
	return user, nil
}

// DeleteUser soft-deletes a user. A second delete of the same id reports
// not-found. Activity rows of the user are left untouched.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, usersCacheKey)
	return nil
}
