package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"usermetrics/internal/errors"
	"usermetrics/internal/metrics"
	"usermetrics/internal/model"
	"usermetrics/internal/repository"
)

// recentActivityLimit caps the recent-activity slice in responses and reports.
const recentActivityLimit = 10

// activityWindowStart returns the lower bound of the reporting window,
// one calendar month back.
func activityWindowStart(now time.Time) time.Time {
	return now.AddDate(0, -1, 0)
}

// ActivityData is the composite returned for a user's activity: profile,
// recent log entries and aggregated per-type counters.
type ActivityData struct {
	User             model.Profile               `json:"user"`
	RecentActivities []model.UserActivity        `json:"recentActivities"`
	ActivitySummary  []model.ActivityTypeSummary `json:"activitySummary"`
}

// ActivityService handles activity accounting.
type ActivityService interface {
	RecordActivity(ctx context.Context, userID uuid.UUID, activityType, details string) error
	GetUserActivity(ctx context.Context, userID uuid.UUID) (*ActivityData, error)
}

type activityService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
}

// NewActivityService builds an ActivityService.
func NewActivityService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{userRepo: userRepo, activityRepo: activityRepo}
}

// RecordActivity appends a log entry and bumps the per-type counter for a
// non-deleted user. Log row and counter move together or not at all.
func (s *activityService) RecordActivity(ctx context.Context, userID uuid.UUID, activityType, details string) error {
	if _, err := s.userRepo.FindActiveByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.activityRepo.Record(ctx, userID, activityType, details); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	metrics.IncActivity(activityType)
	return nil
}

// GetUserActivity returns the user's profile, the 10 most recent activities
// within the last month, and the per-type summary over the same window.
// The user lookup is intentionally not filtered by deletion state.
func (s *activityService) GetUserActivity(ctx context.Context, userID uuid.UUID) (*ActivityData, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	since := activityWindowStart(time.Now())

	recent, err := s.activityRepo.RecentByUser(ctx, userID, since, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent activities: %w", err)
	}
	summary, err := s.activityRepo.SummaryByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("fetch activity summary: %w", err)
	}

	if recent == nil {
		recent = []model.UserActivity{}
	}
	if summary == nil {
		summary = []model.ActivityTypeSummary{}
	}

	return &ActivityData{
		User:             user.Profile(),
		RecentActivities: recent,
		ActivitySummary:  summary,
	}, nil
}
