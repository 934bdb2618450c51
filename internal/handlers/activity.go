package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type ActivityResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Severity     string    `json:"severity"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Suspicious   bool      `json:"suspicious"`
}

func activityResponses(events []models.ActivityEvent) []ActivityResponse {
	response := make([]ActivityResponse, 0, len(events))

	for _, event := range events {
		response = append(response, ActivityResponse{
			ID:           event.ID,
			UserID:       event.UserID,
			ActivityType: string(event.ActivityType),
			Severity:     string(event.Severity),
			IPAddress:    event.IPAddress,
			UserAgent:    event.UserAgent,
			Timestamp:    event.Timestamp,
			Suspicious:   event.Suspicious,
		})
	}

	return response
}

func daysParam(ctx *gin.Context) int {
	days, err := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		return 30
	}
	return days
}

// ListActivities returns the caller's own audit trail within a day window.
func ListActivities(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	activityType := models.ActivityType(ctx.Query("type"))

	events, err := services.UserActivities(db.DB, userID, activityType, daysParam(ctx))

	if err != nil {
		respondError(ctx, err, "Activities not found")
		return
	}

	ctx.JSON(http.StatusOK, activityResponses(events))
}

// ListAllActivities is the staff-only audit surface across every user.
// Read-only: there is no mutation counterpart.
func ListAllActivities(ctx *gin.Context) {
	suspiciousOnly := ctx.Query("suspicious") == "true"

	events, err := services.AllActivities(db.DB, daysParam(ctx), suspiciousOnly)

	if err != nil {
		respondError(ctx, err, "Activities not found")
		return
	}

	ctx.JSON(http.StatusOK, activityResponses(events))
}
