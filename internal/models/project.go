package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

var (
	ErrTitleTooShort        = errors.New("project title must be at least 5 characters")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidDateRange     = errors.New("end date must be on or after start date")
	ErrProgressOutOfRange   = errors.New("progress must be between 0 and 100")
)

type Project struct {
	gorm.Model

	Title       string `gorm:"not null;size:200;uniqueIndex:idx_owner_title"`
	Slug        string `gorm:"uniqueIndex;not null;size:200"`
	Description string
	OwnerID     uint  `gorm:"not null;index;uniqueIndex:idx_owner_title"`
	CategoryID  *uint `gorm:"index"`
	Status      ProjectStatus
	Priority    Priority
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	Progress    int        `gorm:"default:0"`
	Budget      *decimal.Decimal `gorm:"type:numeric(10,2)"`

	// Relationships
	Owner       User             `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Category    *ProjectCategory `gorm:"foreignKey:CategoryID"`
	TeamMembers []User           `gorm:"many2many:project_team_members"`
	Tasks       []ProjectTask    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// Validate runs on every save, not just form binding, so an inverted date
// range can never reach the store.
func (p *Project) Validate() error {
	if len(p.Title) < 5 {
		return ErrTitleTooShort
	}
	if p.Status == "" {
		p.Status = ProjectPlanning
	}
	if !p.Status.Valid() {
		return ErrInvalidProjectStatus
	}
	if p.Priority == "" {
		p.Priority = PriorityLow
	}
	if !p.Priority.Valid() {
		return ErrInvalidPriority
	}
	if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
		return ErrInvalidDateRange
	}
	if p.Progress < 0 || p.Progress > 100 {
		return ErrProgressOutOfRange
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return nil
}

// IsOverdue reports whether the end date has passed.
func (p *Project) IsOverdue() bool {
	return p.EndDate != nil && p.EndDate.Before(today())
}

// Duration returns the project length in days, or -1 when either date is unset.
func (p *Project) Duration() int {
	if p.StartDate == nil || p.EndDate == nil {
		return -1
	}
	return int(p.EndDate.Sub(*p.StartDate).Hours() / 24)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
