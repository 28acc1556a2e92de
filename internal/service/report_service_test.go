package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"usermetrics/internal/errors"
	"usermetrics/internal/model"
)

func TestReportService_BuildActivityReport(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	t.Run("resolves user, logs the download, returns window data", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockActivityRepo := new(MockActivityRepository)

		mockUserRepo.On("FindActiveByID", mock.Anything, userID).Return(&model.User{
			ID:    userID,
			Name:  "Alice",
			Email: "alice@x.com",
			Role:  model.RoleUser,
		}, nil)
		mockActivityRepo.On("Record", mock.Anything, userID, model.ActivityPDFDownload, "Downloaded activity report").Return(nil).Once()

		recent := []model.UserActivity{
			{UserID: userID, ActivityType: model.ActivityPDFDownload, ActivityTimestamp: now, Details: "Downloaded activity report"},
		}
		summary := []model.ActivityTypeSummary{
			{ActivityType: model.ActivityPDFDownload, ActivityCount: 1, LastUpdated: now},
		}
		mockActivityRepo.On("RecentByUser", mock.Anything, userID, mock.AnythingOfType("time.Time"), recentActivityLimit).Return(recent, nil)
		mockActivityRepo.On("SummaryByUser", mock.Anything, userID, mock.AnythingOfType("time.Time")).Return(summary, nil)

		svc := NewReportService(mockUserRepo, mockActivityRepo)
		data, err := svc.BuildActivityReport(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, "Alice", data.User.Name)
		assert.Equal(t, recent, data.Recent)
		assert.Equal(t, summary, data.Summary)
		assert.True(t, data.WindowStart.Before(data.GeneratedAt))

		mockUserRepo.AssertExpectations(t)
		mockActivityRepo.AssertExpectations(t)
		mockActivityRepo.AssertNumberOfCalls(t, "Record", 1)
	})

	t.Run("never-active user still logs exactly one download", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockActivityRepo := new(MockActivityRepository)

		mockUserRepo.On("FindActiveByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Bob"}, nil)
		mockActivityRepo.On("Record", mock.Anything, userID, model.ActivityPDFDownload, "Downloaded activity report").Return(nil).Once()
		mockActivityRepo.On("RecentByUser", mock.Anything, userID, mock.AnythingOfType("time.Time"), recentActivityLimit).Return([]model.UserActivity{}, nil)
		mockActivityRepo.On("SummaryByUser", mock.Anything, userID, mock.AnythingOfType("time.Time")).Return([]model.ActivityTypeSummary{}, nil)

		svc := NewReportService(mockUserRepo, mockActivityRepo)
		data, err := svc.BuildActivityReport(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, data.Recent, 0)
		assert.Len(t, data.Summary, 0)
		mockActivityRepo.AssertNumberOfCalls(t, "Record", 1)
	})

	t.Run("deleted user reports not found without logging", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockActivityRepo := new(MockActivityRepository)

		mockUserRepo.On("FindActiveByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewReportService(mockUserRepo, mockActivityRepo)
		data, err := svc.BuildActivityReport(context.Background(), userID)

		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		assert.Nil(t, data)
		mockActivityRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
