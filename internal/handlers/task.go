package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/logger"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"go.uber.org/zap"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	AssigneeID  *uint  `json:"assignee_id"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	AssigneeID  *uint   `json:"assignee_id"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

type TaskResponse struct {
	ID          uint      `json:"id"`
	ProjectID   uint      `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AssigneeID  *uint     `json:"assignee_id,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"due_date,omitempty"`
	IsOverdue   bool      `json:"is_overdue"`
	CreatedAt   time.Time `json:"created_at"`
}

func taskResponse(task *models.ProjectTask) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		AssigneeID:  task.AssigneeID,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     formatDate(task.DueDate),
		IsOverdue:   task.IsOverdue(),
		CreatedAt:   task.CreatedAt,
	}
}

func taskTitleTaken(projectID uint, title string, excludeID uint) (bool, error) {
	var count int64

	query := db.DB.Model(&models.ProjectTask{}).Where("project_id = ? AND title = ?", projectID, title)

	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// dueDateInProjectWindow rejects a due date falling outside the project's
// start/end range when those dates are set.
func dueDateInProjectWindow(project *models.Project, dueDate *time.Time) bool {
	if dueDate == nil {
		return true
	}
	if project.StartDate != nil && dueDate.Before(*project.StartDate) {
		return false
	}
	if project.EndDate != nil && dueDate.After(*project.EndDate) {
		return false
	}
	return true
}

func validateAssignee(ctx *gin.Context, assigneeID *uint) bool {
	if assigneeID == nil {
		return true
	}

	var count int64

	if err := db.DB.Model(&models.User{}).Where("id = ?", *assigneeID).Count(&count).Error; err != nil {
		respondError(ctx, err, "Task not found")
		return false
	}

	if count == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Assignee does not exist"})
		return false
	}

	return true
}

func recomputeProgress(projectID uint) {
	if _, err := services.RecomputeProgress(db.DB, projectID); err != nil {
		logger.Log.Error("failed to recompute project progress",
			zap.Uint("project_id", projectID),
			zap.Error(err),
		)
	}
}

func CreateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Task creation is open to the whole team, not just the owner.
	project, err := services.ProjectForView(db.DB, projectID, userID)

	if err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	taken, err := taskTitleTaken(project.ID, body.Title, 0)

	if err != nil {
		respondError(ctx, err, "Task not found")
		return
	}

	if taken {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A task with this title already exists in the project"})
		return
	}

	dueDate, err := parseDate(body.DueDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date, expected YYYY-MM-DD"})
		return
	}

	if !dueDateInProjectWindow(project, dueDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Task due date must fall within the project date range"})
		return
	}

	if !validateAssignee(ctx, body.AssigneeID) {
		return
	}

	task := models.ProjectTask{
		ProjectID:   project.ID,
		Title:       body.Title,
		Description: body.Description,
		AssigneeID:  body.AssigneeID,
		Status:      models.TaskStatus(body.Status),
		Priority:    models.Priority(body.Priority),
		DueDate:     dueDate,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		respondError(ctx, err, "Task not found")
		return
	}

	recomputeProgress(project.ID)

	ctx.JSON(http.StatusCreated, taskResponse(&task))
}

func ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := services.ProjectForView(db.DB, projectID, userID)

	if err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	query := db.DB.Where("project_id = ?", project.ID)

	if status := ctx.Query("status"); status != "" {
		if !models.TaskStatus(status).Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidTaskStatus.Error()})
			return
		}
		query = query.Where("status = ?", status)
	}

	var tasks []models.ProjectTask

	if err := query.Order("due_date").Find(&tasks).Error; err != nil {
		respondError(ctx, err, "Tasks not found")
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for i := range tasks {
		response = append(response, taskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, taskID, err := utils.GetProjectTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Mutating a task requires owning the project; the assignee alone
	// holds no edit rights.
	task, err := services.TaskForManage(db.DB, projectID, taskID, userID)

	if err != nil {
		respondError(ctx, err, "Task not found")
		return
	}

	var project models.Project

	if err := db.DB.First(&project, task.ProjectID).Error; err != nil {
		respondError(ctx, err, "Task not found")
		return
	}

	if body.Title != nil && *body.Title != task.Title {
		taken, err := taskTitleTaken(task.ProjectID, *body.Title, task.ID)

		if err != nil {
			respondError(ctx, err, "Task not found")
			return
		}

		if taken {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A task with this title already exists in the project"})
			return
		}

		task.Title = *body.Title
	}

	if body.Description != nil {
		task.Description = *body.Description
	}
	if body.AssigneeID != nil {
		if !validateAssignee(ctx, body.AssigneeID) {
			return
		}
		task.AssigneeID = body.AssigneeID
	}
	if body.Status != nil {
		task.Status = models.TaskStatus(*body.Status)
	}
	if body.Priority != nil {
		task.Priority = models.Priority(*body.Priority)
	}
	if body.DueDate != nil {
		dueDate, err := parseDate(*body.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date, expected YYYY-MM-DD"})
			return
		}
		if !dueDateInProjectWindow(&project, dueDate) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Task due date must fall within the project date range"})
			return
		}
		task.DueDate = dueDate
	}

	if err := db.DB.Save(task).Error; err != nil {
		respondError(ctx, err, "Task not found")
		return
	}

	recomputeProgress(task.ProjectID)

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, taskID, err := utils.GetProjectTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := services.TaskForManage(db.DB, projectID, taskID, userID)

	if err != nil {
		respondError(ctx, err, "Task not found")
		return
	}

	if err := db.DB.Delete(task).Error; err != nil {
		respondError(ctx, err, "Task not found")
		return
	}

	recomputeProgress(task.ProjectID)

	ctx.Status(http.StatusNoContent)
}
