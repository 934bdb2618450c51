package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"gorm.io/gorm"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "missing row is 404",
			err:        gorm.ErrRecordNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "validation failure is 400",
			err:        models.ErrTitleTooShort,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "past due date is 400",
			err:        models.ErrDueDateInPast,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "taken email is 409",
			err:        services.ErrEmailTaken,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "duplicate key is 409",
			err:        gorm.ErrDuplicatedKey,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown error is 500",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(recorder)

			respondError(ctx, tt.err, "Not found")

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "error")
		})
	}
}

func TestRespondError_DoesNotLeakInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	respondError(ctx, errors.New("pq: password authentication failed"), "Not found")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "password authentication")
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDate("15/03/2026")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-15", formatDate(&d))
	assert.Equal(t, "", formatDate(nil))
}

func TestDueDateInProjectWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	inside := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	after := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	bounded := &models.Project{Title: "Website Revamp", StartDate: &start, EndDate: &end}
	openEnded := &models.Project{Title: "Website Revamp"}

	tests := []struct {
		name    string
		project *models.Project
		dueDate *time.Time
		want    bool
	}{
		{"no due date always fits", bounded, nil, true},
		{"inside the window", bounded, &inside, true},
		{"on the start boundary", bounded, &start, true},
		{"on the end boundary", bounded, &end, true},
		{"before the window", bounded, &before, false},
		{"after the window", bounded, &after, false},
		{"project without dates accepts anything", openEnded, &after, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dueDateInProjectWindow(tt.project, tt.dueDate))
		})
	}
}
