package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityLogin              ActivityType = "LOGIN"
	ActivityLogout             ActivityType = "LOGOUT"
	ActivityRegistration       ActivityType = "REGISTRATION"
	ActivityProfileUpdate      ActivityType = "PROFILE_UPDATE"
	ActivityPasswordChange     ActivityType = "PASSWORD_CHANGE"
	ActivityEmailVerification  ActivityType = "EMAIL_VERIFICATION"
	ActivityAccountActivation  ActivityType = "ACCOUNT_ACTIVATION"
	ActivityTwoFactorAuth      ActivityType = "TWO_FACTOR_AUTH"
	ActivityPasswordReset      ActivityType = "PASSWORD_RESET"
	ActivityDeviceLogin        ActivityType = "DEVICE_LOGIN"
	ActivityUnauthorizedAccess ActivityType = "UNAUTHORIZED_ACCESS"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityLogin, ActivityLogout, ActivityRegistration,
		ActivityProfileUpdate, ActivityPasswordChange,
		ActivityEmailVerification, ActivityAccountActivation,
		ActivityTwoFactorAuth, ActivityPasswordReset,
		ActivityDeviceLogin, ActivityUnauthorizedAccess:
		return true
	}
	return false
}

type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

var (
	ErrInvalidActivityType = errors.New("invalid activity type")
	ErrInvalidSeverity     = errors.New("invalid severity level")
)

// ActivityEvent is an append-only security/account audit record. Events of
// the same type for the same user at the same timestamp are rejected by the
// composite unique index; a duplicate indicates a double submission upstream.
type ActivityEvent struct {
	gorm.Model

	UserID       uint         `gorm:"not null;index;uniqueIndex:idx_user_activity"`
	ActivityType ActivityType `gorm:"not null;size:30;uniqueIndex:idx_user_activity"`
	Severity     Severity     `gorm:"not null;size:20;default:'INFO'"`
	IPAddress    string
	UserAgent    string
	Location     datatypes.JSON `gorm:"type:jsonb"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	Timestamp    time.Time      `gorm:"not null;index;uniqueIndex:idx_user_activity"`
	Suspicious   bool           `gorm:"default:false"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (e *ActivityEvent) BeforeCreate(tx *gorm.DB) error {
	if e.Severity == "" {
		e.Severity = SeverityInfo
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return e.Validate()
}

func (e *ActivityEvent) Validate() error {
	if !e.ActivityType.Valid() {
		return ErrInvalidActivityType
	}
	if !e.Severity.Valid() {
		return ErrInvalidSeverity
	}
	return nil
}
