package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreateProjectRequest struct {
	Title         string           `json:"title" binding:"required,min=5,max=200"`
	Description   string           `json:"description"`
	CategoryID    *uint            `json:"category_id"`
	Status        string           `json:"status"`
	Priority      string           `json:"priority"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	Budget        *decimal.Decimal `json:"budget"`
	TeamMemberIDs []uint           `json:"team_member_ids"`
}

type UpdateProjectRequest struct {
	Title         *string          `json:"title" binding:"omitempty,min=5,max=200"`
	Description   *string          `json:"description"`
	CategoryID    *uint            `json:"category_id"`
	Status        *string          `json:"status"`
	Priority      *string          `json:"priority"`
	StartDate     *string          `json:"start_date"`
	EndDate       *string          `json:"end_date"`
	Budget        *decimal.Decimal `json:"budget"`
	TeamMemberIDs *[]uint          `json:"team_member_ids"`
}

type ProjectResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	OwnerID     uint              `json:"owner_id"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	StartDate   string            `json:"start_date,omitempty"`
	EndDate     string            `json:"end_date,omitempty"`
	Progress    int               `json:"progress"`
	Budget      *decimal.Decimal  `json:"budget,omitempty"`
	IsOverdue   bool              `json:"is_overdue"`
	TeamMembers []UserSummary     `json:"team_members"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ProjectDetailResponse struct {
	ProjectResponse

	DurationDays   int            `json:"duration_days,omitempty"`
	Tasks          []TaskResponse `json:"tasks"`
	TotalTasks     int            `json:"total_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
}

func projectResponse(project *models.Project) ProjectResponse {
	members := make([]UserSummary, 0, len(project.TeamMembers))

	for i := range project.TeamMembers {
		members = append(members, UserSummary{
			ID:       project.TeamMembers[i].ID,
			Username: project.TeamMembers[i].Username,
			FullName: project.TeamMembers[i].FullName(),
		})
	}

	response := ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Slug:        project.Slug,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		Status:      string(project.Status),
		Priority:    string(project.Priority),
		StartDate:   formatDate(project.StartDate),
		EndDate:     formatDate(project.EndDate),
		Progress:    project.Progress,
		Budget:      project.Budget,
		IsOverdue:   project.IsOverdue(),
		TeamMembers: members,
		CreatedAt:   project.CreatedAt,
	}

	if project.Category != nil {
		response.Category = &CategoryResponse{
			ID:          project.Category.ID,
			Name:        string(project.Category.Name),
			Description: project.Category.Description,
			Slug:        project.Category.Slug,
		}
	}

	return response
}

// teamMembersByID resolves team member IDs, dropping the owner: ownership
// already implies full access and membership would only muddy the predicate.
func teamMembersByID(ids []uint, ownerID uint) ([]models.User, error) {
	filtered := make([]uint, 0, len(ids))

	for _, id := range ids {
		if id != ownerID {
			filtered = append(filtered, id)
		}
	}

	if len(filtered) == 0 {
		return []models.User{}, nil
	}

	var users []models.User

	if err := db.DB.Where("id IN ?", filtered).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func projectTitleTaken(ownerID uint, title string, excludeID uint) (bool, error) {
	var count int64

	query := db.DB.Model(&models.Project{}).Where("owner_id = ? AND title = ?", ownerID, title)

	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	taken, err := projectTitleTaken(userID, body.Title, 0)

	if err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	if taken {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A project with this title already exists"})
		return
	}

	startDate, err := parseDate(body.StartDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}

	endDate, err := parseDate(body.EndDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return
	}

	project := models.Project{
		Title:       body.Title,
		Description: body.Description,
		OwnerID:     userID,
		CategoryID:  body.CategoryID,
		Status:      models.ProjectStatus(body.Status),
		Priority:    models.Priority(body.Priority),
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      body.Budget,
	}

	members, err := teamMembersByID(body.TeamMemberIDs, userID)

	if err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	project.TeamMembers = members

	if err := db.DB.Create(&project).Error; err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(&project))
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := services.ViewableProjects(db.DB, userID)

	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	if status := ctx.Query("status"); status != "" {
		if !models.ProjectStatus(status).Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidProjectStatus.Error()})
			return
		}
		query = query.Where("status = ?", status)
	}

	if priority := ctx.Query("priority"); priority != "" {
		if !models.Priority(priority).Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidPriority.Error()})
			return
		}
		query = query.Where("priority = ?", priority)
	}

	if categoryID := ctx.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	startFrom, err := parseDate(ctx.Query("start_date_from"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date_from, expected YYYY-MM-DD"})
		return
	}

	startTo, err := parseDate(ctx.Query("start_date_to"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date_to, expected YYYY-MM-DD"})
		return
	}

	if startFrom != nil && startTo != nil {
		query = query.Where("start_date BETWEEN ? AND ?", startFrom, startTo)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		respondError(ctx, err, "Projects not found")
		return
	}

	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var projects []models.Project

	err = query.Preload("TeamMembers").Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projects).Error

	if err != nil {
		respondError(ctx, err, "Projects not found")
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"projects": response,
		"total":    total,
		"page":     page,
	})
}

func GetProject(ctx *gin.Context) {
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

	var tasks []models.ProjectTask

	if err := db.DB.Preload("Assignee").Where("project_id = ?", project.ID).Order("due_date").Find(&tasks).Error; err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	completed := 0

	taskResponses := make([]TaskResponse, 0, len(tasks))

	for i := range tasks {
		if tasks[i].Status == models.TaskDone {
			completed++
		}
		taskResponses = append(taskResponses, taskResponse(&tasks[i]))
	}

	response := ProjectDetailResponse{
		ProjectResponse: projectResponse(project),
		Tasks:           taskResponses,
		TotalTasks:      len(tasks),
		CompletedTasks:  completed,
	}

	if duration := project.Duration(); duration >= 0 {
		response.DurationDays = duration
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateProject(ctx *gin.Context) {
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

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Owner only: team members may read a project but never rename,
	// reconfigure, or remove it.
	project, err := services.ProjectForManage(db.DB, projectID, userID)

	if err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	if body.Title != nil && *body.Title != project.Title {
		taken, err := projectTitleTaken(userID, *body.Title, project.ID)

		if err != nil {
			respondError(ctx, err, "Project not found")
			return
		}

		if taken {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A project with this title already exists"})
			return
		}

		project.Title = *body.Title
	}

	if body.Description != nil {
		project.Description = *body.Description
	}
	if body.CategoryID != nil {
		project.CategoryID = body.CategoryID
	}
	if body.Status != nil {
		project.Status = models.ProjectStatus(*body.Status)
	}
	if body.Priority != nil {
		project.Priority = models.Priority(*body.Priority)
	}
	if body.StartDate != nil {
		startDate, err := parseDate(*body.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		project.StartDate = startDate
	}
	if body.EndDate != nil {
		endDate, err := parseDate(*body.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		project.EndDate = endDate
	}
	if body.Budget != nil {
		project.Budget = body.Budget
	}

	if err := db.DB.Save(project).Error; err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	if body.TeamMemberIDs != nil {
		members, err := teamMembersByID(*body.TeamMemberIDs, userID)

		if err != nil {
			respondError(ctx, err, "Project not found")
			return
		}

		if err := db.DB.Model(project).Association("TeamMembers").Replace(members); err != nil {
			respondError(ctx, err, "Project not found")
			return
		}

		project.TeamMembers = members
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
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

	project, err := services.ProjectForManage(db.DB, projectID, userID)

	if err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	if err := db.DB.Select("Tasks", "TeamMembers").Delete(project).Error; err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RecomputeProjectProgress is the explicit recompute operation. Task
// mutations already trigger it, so this mainly serves reconciliation.
func RecomputeProjectProgress(ctx *gin.Context) {
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

	project, err := services.ProjectForManage(db.DB, projectID, userID)

	if err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	progress, err := services.RecomputeProgress(db.DB, project.ID)

	if err != nil {
		respondError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"progress": progress})
}
