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
	"usermetrics/internal/report"
	"usermetrics/internal/repository"
)

// ReportService prepares activity reports for rendering.
type ReportService interface {
	// BuildActivityReport resolves a non-deleted user, logs the download as
	// an activity of its own, and returns the report data. The logged
	// download is part of the window the report then fetches, so it shows
	// up in its own report.
	BuildActivityReport(ctx context.Context, userID uuid.UUID) (*report.Data, error)
}

type reportService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
}

// NewReportService builds a ReportService.
func NewReportService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository) ReportService {
	return &reportService{userRepo: userRepo, activityRepo: activityRepo}
}

func (s *reportService) BuildActivityReport(ctx context.Context, userID uuid.UUID) (*report.Data, error) {
	user, err := s.userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.activityRepo.Record(ctx, userID, model.ActivityPDFDownload, "Downloaded activity report"); err != nil {
		return nil, fmt.Errorf("record download activity: %w", err)
	}
	metrics.IncActivity(model.ActivityPDFDownload)

	now := time.Now()
	since := activityWindowStart(now)

	recent, err := s.activityRepo.RecentByUser(ctx, userID, since, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent activities: %w", err)
	}
	summary, err := s.activityRepo.SummaryByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("fetch activity summary: %w", err)
	}

	metrics.IncReport()
	return &report.Data{
		User:        user.Profile(),
		GeneratedAt: now,
		WindowStart: since,
		Summary:     summary,
		Recent:      recent,
	}, nil
}
