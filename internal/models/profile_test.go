package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_CompletionPercentage(t *testing.T) {
	birthDate := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)

	// Each step fills one more tracked field; the percentage must climb in
	// exact 20-point increments and never decrease.
	steps := []struct {
		name  string
		apply func(p *Profile)
		want  int
	}{
		{"empty", func(p *Profile) {}, 0},
		{"birth date", func(p *Profile) { p.BirthDate = &birthDate }, 20},
		{"phone", func(p *Profile) { p.PhoneNumber = "+6281234567890" }, 40},
		{"education", func(p *Profile) { p.EducationLevel = EducationBachelor }, 60},
		{"occupation", func(p *Profile) { p.Occupation = "Engineer" }, 80},
		{"image", func(p *Profile) { p.ImagePath = "profile_images/1/x.jpg" }, 100},
	}

	var profile Profile
	previous := 0

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			step.apply(&profile)
			got := profile.CompletionPercentage()
			assert.Equal(t, step.want, got)
			assert.GreaterOrEqual(t, got, previous)
			previous = got
		})
	}
}

func TestProfile_IsComplete(t *testing.T) {
	birthDate := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)

	complete := Profile{
		BirthDate:      &birthDate,
		PhoneNumber:    "+6281234567890",
		EducationLevel: EducationMaster,
		Occupation:     "Designer",
	}

	// The image does not count toward completeness.
	assert.True(t, complete.IsComplete())
	assert.Empty(t, complete.IncompleteFields())

	incomplete := Profile{PhoneNumber: "+6281234567890"}
	assert.False(t, incomplete.IsComplete())
	assert.Equal(t, []string{"birth_date", "education_level", "occupation"}, incomplete.IncompleteFields())
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{
			name:    "empty profile is valid",
			profile: Profile{},
		},
		{
			name:    "valid phone",
			profile: Profile{PhoneNumber: "+6281234567890"},
		},
		{
			name:    "phone too short",
			profile: Profile{PhoneNumber: "12345"},
			wantErr: ErrInvalidPhoneNumber,
		},
		{
			name:    "phone with letters",
			profile: Profile{PhoneNumber: "+62abc4567890"},
			wantErr: ErrInvalidPhoneNumber,
		},
		{
			name:    "unknown gender",
			profile: Profile{Gender: "X"},
			wantErr: ErrInvalidGender,
		},
		{
			name:    "unknown education level",
			profile: Profile{EducationLevel: "PHD"},
			wantErr: ErrInvalidEducation,
		},
		{
			name:    "unknown marital status",
			profile: Profile{MaritalStatus: "X"},
			wantErr: ErrInvalidMaritalStatus,
		},
		{
			name:    "all enums populated",
			profile: Profile{Gender: GenderFemale, EducationLevel: EducationDoctorate, MaritalStatus: MaritalMarried},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProfile_ValidateDefaultsGender(t *testing.T) {
	profile := Profile{}
	require.NoError(t, profile.Validate())
	assert.Equal(t, GenderNotSpecified, profile.Gender)
}
