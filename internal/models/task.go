package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskDone:
		return true
	}
	return false
}

var (
	ErrTaskTitleRequired = errors.New("task title is required")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrDueDateInPast     = errors.New("due date must not be in the past")
)

type ProjectTask struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index;uniqueIndex:idx_project_title"`
	Title       string `gorm:"not null;size:200;uniqueIndex:idx_project_title"`
	Description string
	AssigneeID  *uint `gorm:"index"`
	Status      TaskStatus
	Priority    Priority
	DueDate     *time.Time `gorm:"type:date"`

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee *User   `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

func (t *ProjectTask) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}

// Validate rejects a past due date on every save, updates included, even
// when the stored row already carries one. Today is accepted.
func (t *ProjectTask) Validate() error {
	if t.Title == "" {
		return ErrTaskTitleRequired
	}
	if t.Status == "" {
		t.Status = TaskTodo
	}
	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}
	if t.Priority == "" {
		t.Priority = PriorityLow
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if t.DueDate != nil && t.DueDate.Before(today()) {
		return ErrDueDateInPast
	}
	return nil
}

// IsOverdue reports whether the due date has passed.
func (t *ProjectTask) IsOverdue() bool {
	return t.DueDate != nil && t.DueDate.Before(today())
}
