package services

import (
	"errors"
	"strings"

	"github.com/taskhive-dev/taskhive/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("email already exists")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrPasswordRequired = errors.New("password is required")

	// ErrSuperuserFlags is a configuration error: superusers must carry
	// is_staff and is_active, and a caller asking otherwise is misconfigured.
	ErrSuperuserFlags = errors.New("superuser must have is_staff=true and is_active=true")
)

type CreateUserParams struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// CreateUser registers a user and their empty profile in one transaction.
// Uniqueness is checked up front so callers get a conflict error instead of
// a raw constraint violation from the store.
func CreateUser(db *gorm.DB, params CreateUserParams) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	username := strings.TrimSpace(params.Username)

	if params.Password == "" {
		return nil, ErrPasswordRequired
	}

	user := models.User{
		Email:     email,
		Username:  username,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := checkIdentityFree(db, email, username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &user, nil
}

type SuperuserParams struct {
	CreateUserParams

	// Explicit flag overrides. Passing false for either staff or active is
	// rejected before anything is persisted.
	IsStaff  *bool
	IsActive *bool
}

// CreateSuperuser registers a staff account with staff, active, and verified
// forced on.
func CreateSuperuser(db *gorm.DB, params SuperuserParams) (*models.User, error) {
	if params.IsStaff != nil && !*params.IsStaff {
		return nil, ErrSuperuserFlags
	}
	if params.IsActive != nil && !*params.IsActive {
		return nil, ErrSuperuserFlags
	}

	user, err := CreateUser(db, params.CreateUserParams)
	if err != nil {
		return nil, err
	}

	err = db.Model(user).UpdateColumns(map[string]interface{}{
		"is_staff":    true,
		"is_active":   true,
		"is_verified": true,
	}).Error
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsActive = true
	user.IsVerified = true
	return user, nil
}

// ListUsers enumerates active users for the team picker.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Where("is_active = true").Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func checkIdentityFree(db *gorm.DB, email, username string) error {
	var count int64

	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	return nil
}
