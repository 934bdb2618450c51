package services

import (
	"errors"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrDuplicateActivity means an event of the same type for the same user
// already exists at the same timestamp. This is treated as a genuine error
// rather than swallowed: it usually indicates a double submission upstream.
var ErrDuplicateActivity = errors.New("duplicate activity event")

type ActivityOptions struct {
	IPAddress  string
	UserAgent  string
	Location   datatypes.JSON
	Metadata   datatypes.JSON
	Severity   models.Severity
	Suspicious bool
}

// LogActivity appends an audit event for the user.
func LogActivity(db *gorm.DB, userID uint, activityType models.ActivityType, opts ActivityOptions) (*models.ActivityEvent, error) {
	event := models.ActivityEvent{
		UserID:       userID,
		ActivityType: activityType,
		Severity:     opts.Severity,
		IPAddress:    opts.IPAddress,
		UserAgent:    opts.UserAgent,
		Location:     opts.Location,
		Metadata:     opts.Metadata,
		Timestamp:    time.Now(),
		Suspicious:   opts.Suspicious,
	}

	if err := db.Create(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateActivity
		}
		return nil, err
	}

	return &event, nil
}

// UserActivities returns the user's events within the last N days, newest
// first, optionally narrowed to one activity type.
func UserActivities(db *gorm.DB, userID uint, activityType models.ActivityType, days int) ([]models.ActivityEvent, error) {
	if days <= 0 {
		days = 30
	}

	query := db.Where("user_id = ? AND timestamp >= ?", userID, time.Now().AddDate(0, 0, -days))

	if activityType != "" {
		if !activityType.Valid() {
			return nil, models.ErrInvalidActivityType
		}
		query = query.Where("activity_type = ?", activityType)
	}

	var events []models.ActivityEvent
	if err := query.Order("timestamp DESC").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// AllActivities is the staff audit listing across every user.
func AllActivities(db *gorm.DB, days int, suspiciousOnly bool) ([]models.ActivityEvent, error) {
	if days <= 0 {
		days = 30
	}

	query := db.Where("timestamp >= ?", time.Now().AddDate(0, 0, -days))
	if suspiciousOnly {
		query = query.Where("suspicious = true")
	}

	var events []models.ActivityEvent
	if err := query.Order("timestamp DESC").Limit(500).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
