package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"usermetrics/internal/model"
)

// ActivityRepository defines persistence for the activity log and its
// per-type running counters.
type ActivityRepository interface {
	// Record appends a log row and bumps the matching summary counter in a
	// single transaction.
	Record(ctx context.Context, userID uuid.UUID, activityType, details string) error
	RecentByUser(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]model.UserActivity, error)
	SummaryByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.ActivityTypeSummary, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository builds a GORM-backed repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Record inserts the activity row and upserts the (user_id, activity_type)
// summary. Concurrent records for the same pair rely on the unique index
// plus the database's conflict resolution for counter correctness.
func (r *activityRepository) Record(ctx context.Context, userID uuid.UUID, activityType, details string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity := model.UserActivity{
			UserID:       userID,
			ActivityType: activityType,
			Details:      details,
		}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		summary := model.UserActivitySummary{
			UserID:        userID,
			ActivityType:  activityType,
			ActivityCount: 1,
			LastUpdated:   activity.ActivityTimestamp,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "activity_type"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"activity_count": gorm.Expr("activity_count + 1"),
				"last_updated":   activity.ActivityTimestamp,
			}),
		}).Create(&summary).Error
	})
}

// RecentByUser returns the newest activities since the given time, capped at limit.
func (r *activityRepository) RecentByUser(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]model.UserActivity, error) {
	var activities []model.UserActivity
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND activity_timestamp >= ?", userID, since).
		Order("activity_timestamp DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// SummaryByUser returns summary rows updated since the given time,
// re-aggregated per activity type. The unique index keeps one row per type,
// but the query sums and maxes anyway to match the original aggregation.
func (r *activityRepository) SummaryByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.ActivityTypeSummary, error) {
	var summaries []model.ActivityTypeSummary
	if err := r.db.WithContext(ctx).
		Model(&model.UserActivitySummary{}).
		Select("activity_type, SUM(activity_count) AS activity_count, MAX(last_updated) AS last_updated").
		Where("user_id = ? AND last_updated >= ?", userID, since).
		Group("activity_type").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}
