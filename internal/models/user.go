package models

import (
	"errors"
	"regexp"
	"time"

	"gorm.io/gorm"
)

const (
	LanguageEnglish    = "en"
	LanguageIndonesian = "id"
)

const (
	ThemeDefault  = "default"
	ThemeModern   = "modern"
	ThemeGradient = "gradient"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrUsernameRequired = errors.New("username is required")
	ErrInvalidUsername  = errors.New("username may contain letters, numbers, and @/./+/-/_ only")
)

type User struct {
	gorm.Model

	Email            string `gorm:"uniqueIndex;not null"`
	Username         string `gorm:"uniqueIndex;not null;size:50"`
	FirstName        string `gorm:"size:150"`
	LastName         string `gorm:"size:150"`
	PasswordHash     string `gorm:"not null"`
	IsStaff          bool   `gorm:"default:false"`
	IsActive         bool   `gorm:"default:true"`
	IsVerified       bool   `gorm:"default:false"`
	TwoFactorEnabled bool   `gorm:"default:false"`
	LoginCount       uint   `gorm:"default:0"`
	LastLoginIP      string
	DateJoined       time.Time `gorm:"not null"`
	LastActivity     *time.Time
	LanguagePref     string `gorm:"size:10;default:'en'"`
	Theme            string `gorm:"size:20;default:'default'"`

	// Relationships
	Profile       *Profile        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OwnedProjects []Project       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTasks []ProjectTask   `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Activities    []ActivityEvent `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return u.Validate()
}

// Validate enforces the identity invariants that must hold no matter which
// path persists the user. Email is the sole authentication key.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmailRequired
	}
	if u.Username == "" {
		return ErrUsernameRequired
	}
	if !usernamePattern.MatchString(u.Username) {
		return ErrInvalidUsername
	}
	if u.LanguagePref == "" {
		u.LanguagePref = LanguageEnglish
	}
	if u.Theme == "" {
		u.Theme = ThemeDefault
	}
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	return nil
}

// FullName falls back to the email when both name fields are empty.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

func (u *User) ShortName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
