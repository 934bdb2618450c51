package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// ListUsers backs the team picker. A repository-level query, not a method
// on the user entity.
func ListUsers(ctx *gin.Context) {
	if _, err := utils.GetCurrentUserID(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := services.ListUsers(db.DB)

	if err != nil {
		respondError(ctx, err, "Users not found")
		return
	}

	response := make([]UserSummary, 0, len(users))

	for i := range users {
		response = append(response, UserSummary{
			ID:       users[i].ID,
			Username: users[i].Username,
			FullName: users[i].FullName(),
		})
	}

	ctx.JSON(http.StatusOK, response)
}
