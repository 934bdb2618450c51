package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectTask_Validate(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)
	midnightToday := today()

	tests := []struct {
		name    string
		task    ProjectTask
		wantErr error
	}{
		{
			name: "minimal valid task",
			task: ProjectTask{Title: "Ship it"},
		},
		{
			name:    "missing title",
			task:    ProjectTask{},
			wantErr: ErrTaskTitleRequired,
		},
		{
			name:    "unknown status",
			task:    ProjectTask{Title: "Ship it", Status: "blocked"},
			wantErr: ErrInvalidTaskStatus,
		},
		{
			name:    "unknown priority",
			task:    ProjectTask{Title: "Ship it", Priority: "critical"},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "due date in the past",
			task:    ProjectTask{Title: "Ship it", DueDate: &yesterday},
			wantErr: ErrDueDateInPast,
		},
		{
			name: "due date today",
			task: ProjectTask{Title: "Ship it", DueDate: &midnightToday},
		},
		{
			name: "due date in the future",
			task: ProjectTask{Title: "Ship it", DueDate: &tomorrow},
		},
		{
			name: "no due date",
			task: ProjectTask{Title: "Ship it"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// A stored task with an old due date cannot be saved again without moving
// the date. Validation makes no distinction between create and update.
func TestProjectTask_ValidateRejectsStalePastDueDateOnUpdate(t *testing.T) {
	lastWeek := time.Now().AddDate(0, 0, -7)
	task := ProjectTask{Title: "Ship it", Status: TaskInProgress, DueDate: &lastWeek}
	task.ID = 42

	assert.ErrorIs(t, task.Validate(), ErrDueDateInPast)
}

func TestProjectTask_ValidateDefaults(t *testing.T) {
	task := ProjectTask{Title: "Ship it"}
	require.NoError(t, task.Validate())

	assert.Equal(t, TaskTodo, task.Status)
	assert.Equal(t, PriorityLow, task.Priority)
}

func TestProjectTask_IsOverdue(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)

	assert.False(t, (&ProjectTask{Title: "Ship it"}).IsOverdue())
	assert.True(t, (&ProjectTask{Title: "Ship it", DueDate: &yesterday}).IsOverdue())
	assert.False(t, (&ProjectTask{Title: "Ship it", DueDate: &tomorrow}).IsOverdue())
}

func TestTaskStatus_Valid(t *testing.T) {
	for _, s := range []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, TaskStatus("").Valid())
	assert.False(t, TaskStatus("blocked").Valid())
}
