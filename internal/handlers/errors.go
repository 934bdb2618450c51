package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/logger"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validationErrors = []error{
	models.ErrEmailRequired,
	models.ErrUsernameRequired,
	models.ErrInvalidUsername,
	models.ErrInvalidGender,
	models.ErrInvalidEducation,
	models.ErrInvalidMaritalStatus,
	models.ErrInvalidPhoneNumber,
	models.ErrInvalidActivityType,
	models.ErrInvalidSeverity,
	models.ErrInvalidCategoryName,
	models.ErrTitleTooShort,
	models.ErrInvalidProjectStatus,
	models.ErrInvalidPriority,
	models.ErrInvalidDateRange,
	models.ErrProgressOutOfRange,
	models.ErrTaskTitleRequired,
	models.ErrInvalidTaskStatus,
	models.ErrDueDateInPast,
	services.ErrPasswordRequired,
	services.ErrUnsupportedImageType,
}

var conflictErrors = []error{
	services.ErrEmailTaken,
	services.ErrUsernameTaken,
	services.ErrDuplicateActivity,
	gorm.ErrDuplicatedKey,
}

// respondError maps domain errors onto the response taxonomy: validation
// failures are 400, uniqueness conflicts 409, missing-or-forbidden rows 404,
// anything else a logged 500.
func respondError(ctx *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}

	for _, known := range validationErrors {
		if errors.Is(err, known) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": known.Error()})
			return
		}
	}

	for _, known := range conflictErrors {
		if errors.Is(err, known) {
			ctx.JSON(http.StatusConflict, gin.H{"error": known.Error()})
			return
		}
	}

	logger.Log.Error("request failed",
		zap.String("path", ctx.FullPath()),
		zap.Error(err),
	)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// parseDate accepts the wire format for date-only fields.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
