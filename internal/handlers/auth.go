package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/logger"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mail delivers account notifications. Replaced at startup when a real
// backend is configured.
var Mail services.Mailer = services.LogMailer{}

// MailFrom is the sender address for account notifications.
var MailFrom = "no-reply@taskhive.dev"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=50"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Email           string  `json:"email" binding:"omitempty,email"`
	LanguagePref    string  `json:"language_preference"`
	Theme           string  `json:"theme"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password" binding:"omitempty,min=8"`
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsStaff:   user.IsStaff,
	}
}

func logActivity(ctx *gin.Context, userID uint, activityType models.ActivityType, opts services.ActivityOptions) {
	if opts.IPAddress == "" {
		opts.IPAddress = ctx.ClientIP()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = ctx.Request.UserAgent()
	}

	if _, err := services.LogActivity(db.DB, userID, activityType, opts); err != nil {
		logger.Log.Error("failed to log activity",
			zap.Uint("user_id", userID),
			zap.String("activity_type", string(activityType)),
			zap.Error(err),
		)
	}
}

func Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := services.CreateUser(db.DB, services.CreateUserParams{
		Email:     body.Email,
		Username:  body.Username,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})

	if err != nil {
		respondError(ctx, err, "User not found")
		return
	}

	logActivity(ctx, user.ID, models.ActivityRegistration, services.ActivityOptions{})

	// Fire-and-forget; delivery failures never block registration.
	if err := Mail.Send(
		"Welcome to Taskhive",
		fmt.Sprintf("Hi %s, your account has been created.", user.ShortName()),
		MailFrom,
		[]string{user.Email},
	); err != nil {
		logger.Log.Warn("welcome mail failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		logger.Log.Error("failed to generate JWT", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(ctx, err, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		logActivity(ctx, user.ID, models.ActivityUnauthorizedAccess, services.ActivityOptions{
			Severity:   models.SeverityWarning,
			Suspicious: true,
		})
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.IsActive {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Account is inactive"})
		return
	}

	// Login telemetry, hooks skipped: this is bookkeeping, not an edit.
	db.DB.Model(&user).UpdateColumns(map[string]interface{}{
		"login_count":   gorm.Expr("login_count + 1"),
		"last_login_ip": ctx.ClientIP(),
	})

	logActivity(ctx, user.ID, models.ActivityLogin, services.ActivityOptions{})

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		logger.Log.Error("failed to generate JWT", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	profile := fetchOrCreateProfile(user.ID)
	profileComplete := profile != nil && profile.IsComplete()

	ctx.JSON(http.StatusOK, gin.H{
		"token":            token,
		"user":             userResponse(&user),
		"profile_complete": profileComplete,
	})
}

func Logout(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	logActivity(ctx, userID, models.ActivityLogout, services.ActivityOptions{})

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		respondError(ctx, err, "User not found")
		return
	}

	profile := fetchOrCreateProfile(user.ID)
	profileComplete := profile != nil && profile.IsComplete()

	ctx.JSON(http.StatusOK, gin.H{
		"user":             userResponse(&user),
		"profile_complete": profileComplete,
	})
}

func UpdateUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		respondError(ctx, err, "User not found")
		return
	}

	var body UpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if body.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*body.FirstName)
	}

	if body.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*body.LastName)
	}

	if body.LanguagePref != "" {
		if body.LanguagePref != models.LanguageEnglish && body.LanguagePref != models.LanguageIndonesian {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid language preference"})
			return
		}
		updates["language_pref"] = body.LanguagePref
	}

	if body.Theme != "" {
		switch body.Theme {
		case models.ThemeDefault, models.ThemeModern, models.ThemeGradient:
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme"})
			return
		}
		updates["theme"] = body.Theme
	}

	if body.Email != "" {
		newEmail := strings.ToLower(strings.TrimSpace(body.Email))

		if newEmail != user.Email {
			var count int64
			if err := db.DB.Model(&models.User{}).Where("email = ? AND id != ?", newEmail, user.ID).Count(&count).Error; err != nil {
				respondError(ctx, err, "User not found")
				return
			}
			if count > 0 {
				ctx.JSON(http.StatusConflict, gin.H{"error": services.ErrEmailTaken.Error()})
				return
			}
			updates["email"] = newEmail
			// A new address has to be verified again.
			updates["is_verified"] = false
		}
	}

	passwordChanged := false

	if body.NewPassword != "" {
		if body.CurrentPassword == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is required to change password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Error("failed to hash password", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		updates["password_hash"] = string(hash)
		passwordChanged = true
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		respondError(ctx, err, "User not found")
		return
	}

	if passwordChanged {
		logActivity(ctx, user.ID, models.ActivityPasswordChange, services.ActivityOptions{})
	}

	if err := db.DB.First(&user, user.ID).Error; err != nil {
		respondError(ctx, err, "User not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    userResponse(&user),
	})
}

func DeleteUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		respondError(ctx, err, "User not found")
		return
	}

	var body struct {
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password is required for account deletion"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect password"})
		return
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		respondError(ctx, err, "User not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
