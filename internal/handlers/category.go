package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/models"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
}

func ListCategories(ctx *gin.Context) {
	var categories []models.ProjectCategory

	if err := db.DB.Order("name").Find(&categories).Error; err != nil {
		respondError(ctx, err, "Categories not found")
		return
	}

	response := make([]CategoryResponse, 0, len(categories))

	for _, category := range categories {
		response = append(response, CategoryResponse{
			ID:          category.ID,
			Name:        string(category.Name),
			Description: category.Description,
			Slug:        category.Slug,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateCategory is staff-only. Names come from a fixed set, so each value
// can exist at most once.
func CreateCategory(ctx *gin.Context) {
	var body CreateCategoryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	name := models.CategoryName(body.Name)

	if !name.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidCategoryName.Error()})
		return
	}

	var count int64

	if err := db.DB.Model(&models.ProjectCategory{}).Where("name = ?", name).Count(&count).Error; err != nil {
		respondError(ctx, err, "Category not found")
		return
	}

	if count > 0 {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}

	category := models.ProjectCategory{
		Name:        name,
		Description: body.Description,
		Slug:        body.Slug,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		respondError(ctx, err, "Category not found")
		return
	}

	ctx.JSON(http.StatusCreated, CategoryResponse{
		ID:          category.ID,
		Name:        string(category.Name),
		Description: category.Description,
		Slug:        category.Slug,
	})
}
