package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"usermetrics/internal/errors"
	"usermetrics/internal/model"
)

const testDefaultPassword = "Test@123"

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		email     string
		role      model.Role
		setupMock func(*MockUserRepository)
		wantErr   bool
	}{
		{
			name:     "successful creation",
			userName: "Alice",
			email:    "alice@x.com",
			role:     model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "constraint violation surfaces as generic error",
			userName: "Alice",
			email:    "alice@x.com",
			role:     model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil, testDefaultPassword)
			user, err := svc.CreateUser(context.Background(), tt.userName, tt.email, tt.role)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.role, user.Role)
				// The caller cannot pick a password; the configured default is
				// hashed in.
				assert.NoError(t, bcrypt.CompareHashAndPassword(
					[]byte(user.PasswordHash), []byte(testDefaultPassword)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	expected := []model.User{
		{ID: uuid.New(), Name: "Alice", Email: "alice@x.com", Role: model.RoleUser},
		{ID: uuid.New(), Name: "Bob", Email: "bob@x.com", Role: model.RoleAdmin},
	}
	mockRepo.On("ListActive", mock.Anything).Return(expected, nil)

	svc := NewUserService(mockRepo, nil, testDefaultPassword)
	users, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, users)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name: "successful update",
			setupMock: func(m *MockUserRepository) {
				m.On("FindActiveByID", mock.Anything, userID).Return(&model.User{
					ID:    userID,
					Name:  "Alice",
					Email: "alice@x.com",
					Role:  model.RoleUser,
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "soft-deleted or unknown id reports not found",
			setupMock: func(m *MockUserRepository) {
				m.On("FindActiveByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil, testDefaultPassword)
			user, err := svc.UpdateUser(context.Background(), userID, "Alice Updated", "alice2@x.com", model.RoleAdmin)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Alice Updated", user.Name)
				assert.Equal(t, "alice2@x.com", user.Email)
				assert.Equal(t, model.RoleAdmin, user.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name: "successful delete",
			setupMock: func(m *MockUserRepository) {
				m.On("SoftDelete", mock.Anything, userID).Return(nil)
			},
		},
		{
			name: "second delete reports not found",
			setupMock: func(m *MockUserRepository) {
				m.On("SoftDelete", mock.Anything, userID).Return(gorm.ErrRecordNotFound)
			},
			wantErr: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil, testDefaultPassword)
			err := svc.DeleteUser(context.Background(), userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
