package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"usermetrics/internal/auth"
	"usermetrics/internal/errors"
	"usermetrics/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcryptCost)
	activeUser := &model.User{
		ID:           userID,
		Name:         "Alice",
		Email:        "alice@x.com",
		Role:         model.RoleAdmin,
		PasswordHash: string(hashed),
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockActivityService)
		expectedError error
	}{
		{
			name:     "successful login records activity",
			email:    "alice@x.com",
			password: "correct-password",
			setupMock: func(mRepo *MockUserRepository, mActivity *MockActivityService) {
				mRepo.On("FindActiveByEmail", mock.Anything, "alice@x.com").Return(activeUser, nil)
				mActivity.On("RecordActivity", mock.Anything, userID, model.ActivityLogin, "User logged in").Return(nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "whatever",
			setupMock: func(mRepo *MockUserRepository, mActivity *MockActivityService) {
				mRepo.On("FindActiveByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@x.com",
			password: "wrong-password",
			setupMock: func(mRepo *MockUserRepository, mActivity *MockActivityService) {
				mRepo.On("FindActiveByEmail", mock.Anything, "alice@x.com").Return(activeUser, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockActivity := new(MockActivityService)
			tt.setupMock(mockRepo, mockActivity)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, mockActivity, jwtService)

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				// Unknown email and wrong password are indistinguishable, and
				// failed attempts leave no activity trace.
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
				mockActivity.AssertNotCalled(t, "RecordActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockActivity.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_NeverSerializesPassword(t *testing.T) {
	userID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcryptCost)
	activeUser := &model.User{
		ID:           userID,
		Name:         "Alice",
		Email:        "alice@x.com",
		Role:         model.RoleUser,
		PasswordHash: string(hashed),
	}

	mockRepo := new(MockUserRepository)
	mockActivity := new(MockActivityService)
	mockRepo.On("FindActiveByEmail", mock.Anything, "alice@x.com").Return(activeUser, nil)
	mockActivity.On("RecordActivity", mock.Anything, userID, model.ActivityLogin, "User logged in").Return(nil)

	svc := NewAuthService(mockRepo, mockActivity, auth.NewJWTService("test-secret"))
	user, _, err := svc.Login(context.Background(), "alice@x.com", "correct-password")
	assert.NoError(t, err)

	payload, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.False(t, strings.Contains(string(payload), "password"))
	assert.False(t, strings.Contains(string(payload), string(hashed)))
}

func TestAuthService_CurrentUser(t *testing.T) {
	userID := uuid.New()

	t.Run("resolves active user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindActiveByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "alice@x.com"}, nil)

		svc := NewAuthService(mockRepo, new(MockActivityService), auth.NewJWTService("test-secret"))
		user, err := svc.CurrentUser(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, "alice@x.com", user.Email)
	})

	t.Run("deleted user reports not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindActiveByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(mockRepo, new(MockActivityService), auth.NewJWTService("test-secret"))
		user, err := svc.CurrentUser(context.Background(), userID)

		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
