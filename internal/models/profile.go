package models

import (
	"errors"
	"regexp"
	"time"

	"gorm.io/gorm"
)

const (
	GenderMale         = "M"
	GenderFemale       = "F"
	GenderOther        = "O"
	GenderNotSpecified = "N"
)

const (
	EducationElementary = "SD"
	EducationJuniorHigh = "SMP"
	EducationSeniorHigh = "SMA"
	EducationDiploma    = "D3"
	EducationBachelor   = "S1"
	EducationMaster     = "S2"
	EducationDoctorate  = "S3"
	EducationOther      = "OTHER"
)

const (
	MaritalSingle   = "S"
	MaritalMarried  = "M"
	MaritalDivorced = "D"
	MaritalWidowed  = "W"
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var (
	ErrInvalidGender        = errors.New("invalid gender")
	ErrInvalidEducation     = errors.New("invalid education level")
	ErrInvalidMaritalStatus = errors.New("invalid marital status")
	ErrInvalidPhoneNumber   = errors.New("phone number must be entered in the format '+999999999', up to 15 digits")
)

type Profile struct {
	gorm.Model

	UserID         uint   `gorm:"uniqueIndex;not null"`
	Gender         string `gorm:"size:1;default:'N'"`
	BirthDate      *time.Time
	PhoneNumber    string `gorm:"size:15"`
	EducationLevel string `gorm:"size:10"`
	Occupation     string `gorm:"size:100"`
	MaritalStatus  string `gorm:"size:1"`
	ImagePath      string
	Address        string
	City           string `gorm:"size:100"`
	Country        string `gorm:"size:100"`
	PostalCode     string `gorm:"size:20"`
	Bio            string
	TwitterHandle  string `gorm:"size:100"`
	LinkedInHandle string `gorm:"size:100"`
	GitHubHandle   string `gorm:"size:100"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (p *Profile) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

func (p *Profile) Validate() error {
	if p.Gender == "" {
		p.Gender = GenderNotSpecified
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther, GenderNotSpecified:
	default:
		return ErrInvalidGender
	}

	if p.EducationLevel != "" {
		switch p.EducationLevel {
		case EducationElementary, EducationJuniorHigh, EducationSeniorHigh,
			EducationDiploma, EducationBachelor, EducationMaster,
			EducationDoctorate, EducationOther:
		default:
			return ErrInvalidEducation
		}
	}

	if p.MaritalStatus != "" {
		switch p.MaritalStatus {
		case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		default:
			return ErrInvalidMaritalStatus
		}
	}

	if p.PhoneNumber != "" && !phonePattern.MatchString(p.PhoneNumber) {
		return ErrInvalidPhoneNumber
	}

	return nil
}

// trackedFields are the profile fields that count toward completion.
func (p *Profile) trackedFields() []bool {
	return []bool{
		p.BirthDate != nil,
		p.PhoneNumber != "",
		p.EducationLevel != "",
		p.Occupation != "",
		p.ImagePath != "",
	}
}

// CompletionPercentage reports how much of the profile is filled in,
// as 100 * populated / 5, rounded down.
func (p *Profile) CompletionPercentage() int {
	fields := p.trackedFields()
	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	return filled * 100 / len(fields)
}

// IsComplete requires the four fields the application nags about; the
// profile image is optional for completeness.
func (p *Profile) IsComplete() bool {
	return p.BirthDate != nil && p.PhoneNumber != "" &&
		p.EducationLevel != "" && p.Occupation != ""
}

func (p *Profile) IncompleteFields() []string {
	var missing []string
	if p.BirthDate == nil {
		missing = append(missing, "birth_date")
	}
	if p.PhoneNumber == "" {
		missing = append(missing, "phone_number")
	}
	if p.EducationLevel == "" {
		missing = append(missing, "education_level")
	}
	if p.Occupation == "" {
		missing = append(missing, "occupation")
	}
	return missing
}
