package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known activity types. The column itself is free-form; these are the
// values the backend emits on its own.
const (
	ActivityLogin       = "login"
	ActivityPDFDownload = "pdf_download"
)

// UserActivity is an immutable event in the append-only activity log.
// Rows are never updated or deleted, and they survive soft deletion of
// the owning user.
type UserActivity struct {
	ID                uuid.UUID `json:"-" gorm:"type:char(36);primaryKey"`
	UserID            uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	ActivityType      string    `json:"activity_type" gorm:"size:100;not null"`
	ActivityTimestamp time.Time `json:"activity_timestamp" gorm:"not null;index"`
	Details           string    `json:"details" gorm:"type:text"`
}

// TableName keeps the original table name instead of GORM's pluralization.
func (UserActivity) TableName() string {
	return "user_activity"
}

// BeforeCreate sets UUID and server-side timestamp before inserting.
func (a *UserActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ActivityTimestamp.IsZero() {
		a.ActivityTimestamp = time.Now()
	}
	return nil
}

// UserActivitySummary is the denormalized running counter, one row per
// (user, activity type), maintained transactionally with each log insert.
type UserActivitySummary struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	UserID        uuid.UUID `json:"-" gorm:"type:char(36);not null;uniqueIndex:idx_user_activity_type"`
	ActivityType  string    `json:"activity_type" gorm:"size:100;not null;uniqueIndex:idx_user_activity_type"`
	ActivityCount int64     `json:"activity_count" gorm:"not null;default:0"`
	LastUpdated   time.Time `json:"last_updated" gorm:"not null"`
}

// TableName keeps the original table name.
func (UserActivitySummary) TableName() string {
	return "user_activity_summary"
}

// ActivityTypeSummary is one aggregated summary row as returned to clients:
// counts summed and last_updated maxed per activity type.
type ActivityTypeSummary struct {
	ActivityType  string    `json:"activity_type"`
	ActivityCount int64     `json:"activity_count"`
	LastUpdated   time.Time `json:"last_updated"`
}
