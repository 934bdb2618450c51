package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/logger"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store places uploaded profile images. Replaced at startup.
var Store services.FileStore = services.DiskStore{Root: "uploads"}

type UpdateProfileRequest struct {
	Gender         *string `json:"gender"`
	BirthDate      *string `json:"birth_date"`
	PhoneNumber    *string `json:"phone_number"`
	EducationLevel *string `json:"education_level"`
	Occupation     *string `json:"occupation" binding:"omitempty,max=100"`
	MaritalStatus  *string `json:"marital_status"`
	Address        *string `json:"address"`
	City           *string `json:"city" binding:"omitempty,max=100"`
	Country        *string `json:"country" binding:"omitempty,max=100"`
	PostalCode     *string `json:"postal_code" binding:"omitempty,max=20"`
	Bio            *string `json:"bio"`
	TwitterHandle  *string `json:"twitter_username" binding:"omitempty,max=100"`
	LinkedInHandle *string `json:"linkedin_username" binding:"omitempty,max=100"`
	GitHubHandle   *string `json:"github_username" binding:"omitempty,max=100"`
}

type ProfileResponse struct {
	Gender               string   `json:"gender"`
	BirthDate            string   `json:"birth_date,omitempty"`
	PhoneNumber          string   `json:"phone_number,omitempty"`
	EducationLevel       string   `json:"education_level,omitempty"`
	Occupation           string   `json:"occupation,omitempty"`
	MaritalStatus        string   `json:"marital_status,omitempty"`
	ImagePath            string   `json:"image_path,omitempty"`
	Address              string   `json:"address,omitempty"`
	City                 string   `json:"city,omitempty"`
	Country              string   `json:"country,omitempty"`
	PostalCode           string   `json:"postal_code,omitempty"`
	Bio                  string   `json:"bio,omitempty"`
	TwitterHandle        string   `json:"twitter_username,omitempty"`
	LinkedInHandle       string   `json:"linkedin_username,omitempty"`
	GitHubHandle         string   `json:"github_username,omitempty"`
	CompletionPercentage int      `json:"completion_percentage"`
	IsComplete           bool     `json:"is_complete"`
	IncompleteFields     []string `json:"incomplete_fields,omitempty"`
}

func profileResponse(profile *models.Profile) ProfileResponse {
	return ProfileResponse{
		Gender:               profile.Gender,
		BirthDate:            formatDate(profile.BirthDate),
		PhoneNumber:          profile.PhoneNumber,
		EducationLevel:       profile.EducationLevel,
		Occupation:           profile.Occupation,
		MaritalStatus:        profile.MaritalStatus,
		ImagePath:            profile.ImagePath,
		Address:              profile.Address,
		City:                 profile.City,
		Country:              profile.Country,
		PostalCode:           profile.PostalCode,
		Bio:                  profile.Bio,
		TwitterHandle:        profile.TwitterHandle,
		LinkedInHandle:       profile.LinkedInHandle,
		GitHubHandle:         profile.GitHubHandle,
		CompletionPercentage: profile.CompletionPercentage(),
		IsComplete:           profile.IsComplete(),
		IncompleteFields:     profile.IncompleteFields(),
	}
}

// fetchOrCreateProfile implements lazy profile creation on first access.
func fetchOrCreateProfile(userID uint) *models.Profile {
	var profile models.Profile

	err := db.DB.Where("user_id = ?", userID).First(&profile).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		err = db.DB.Create(&profile).Error
	}

	if err != nil {
		logger.Log.Error("failed to load profile", zap.Uint("user_id", userID), zap.Error(err))
		return nil
	}

	return &profile
}

func GetProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile := fetchOrCreateProfile(userID)

	if profile == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	ctx.JSON(http.StatusOK, profileResponse(profile))
}

func UpdateProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profile := fetchOrCreateProfile(userID)

	if profile == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	if body.Gender != nil {
		profile.Gender = *body.Gender
	}
	if body.BirthDate != nil {
		birthDate, err := parseDate(*body.BirthDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birth date, expected YYYY-MM-DD"})
			return
		}
		profile.BirthDate = birthDate
	}
	if body.PhoneNumber != nil {
		profile.PhoneNumber = *body.PhoneNumber
	}
	if body.EducationLevel != nil {
		profile.EducationLevel = *body.EducationLevel
	}
	if body.Occupation != nil {
		profile.Occupation = *body.Occupation
	}
	if body.MaritalStatus != nil {
		profile.MaritalStatus = *body.MaritalStatus
	}
	if body.Address != nil {
		profile.Address = *body.Address
	}
	if body.City != nil {
		profile.City = *body.City
	}
	if body.Country != nil {
		profile.Country = *body.Country
	}
	if body.PostalCode != nil {
		profile.PostalCode = *body.PostalCode
	}
	if body.Bio != nil {
		profile.Bio = *body.Bio
	}
	if body.TwitterHandle != nil {
		profile.TwitterHandle = *body.TwitterHandle
	}
	if body.LinkedInHandle != nil {
		profile.LinkedInHandle = *body.LinkedInHandle
	}
	if body.GitHubHandle != nil {
		profile.GitHubHandle = *body.GitHubHandle
	}

	if err := db.DB.Save(profile).Error; err != nil {
		respondError(ctx, err, "Profile not found")
		return
	}

	logActivity(ctx, userID, models.ActivityProfileUpdate, services.ActivityOptions{})

	ctx.JSON(http.StatusOK, profileResponse(profile))
}

// UploadProfileImage stores the image synchronously within the request. The
// store owns physical placement; this handler only derives the path.
func UploadProfileImage(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	fileHeader, err := ctx.FormFile("image")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	path, err := services.ProfileImagePath(userID, fileHeader.Filename)

	if err != nil {
		respondError(ctx, err, "Profile not found")
		return
	}

	file, err := fileHeader.Open()

	if err != nil {
		respondError(ctx, err, "Profile not found")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		respondError(ctx, err, "Profile not found")
		return
	}

	ref, err := Store.Store(data, path)

	if err != nil {
		respondError(ctx, err, "Profile not found")
		return
	}

	profile := fetchOrCreateProfile(userID)

	if profile == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	profile.ImagePath = ref

	if err := db.DB.Save(profile).Error; err != nil {
		respondError(ctx, err, "Profile not found")
		return
	}

	logActivity(ctx, userID, models.ActivityProfileUpdate, services.ActivityOptions{})

	ctx.JSON(http.StatusOK, profileResponse(profile))
}
