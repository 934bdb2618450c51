package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskhive-dev/taskhive/internal/models"
)

func boolPtr(b bool) *bool { return &b }

// These paths fail before any store access, so a nil handle is safe.

func TestCreateUser_PasswordRequired(t *testing.T) {
	_, err := CreateUser(nil, CreateUserParams{
		Email:    "ana@example.com",
		Username: "ana",
	})

	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestCreateUser_ValidatesIdentity(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateUserParams
		wantErr error
	}{
		{
			name:    "missing email",
			params:  CreateUserParams{Username: "ana", Password: "secret"},
			wantErr: models.ErrEmailRequired,
		},
		{
			name:    "missing username",
			params:  CreateUserParams{Email: "ana@example.com", Password: "secret"},
			wantErr: models.ErrUsernameRequired,
		},
		{
			name:    "invalid username",
			params:  CreateUserParams{Email: "ana@example.com", Username: "ana sari", Password: "secret"},
			wantErr: models.ErrInvalidUsername,
		},
		{
			name:    "whitespace-only email",
			params:  CreateUserParams{Email: "   ", Username: "ana", Password: "secret"},
			wantErr: models.ErrEmailRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(nil, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateSuperuser_RejectsDemotedFlags(t *testing.T) {
	base := CreateUserParams{
		Email:    "admin@example.com",
		Username: "admin",
		Password: "secret",
	}

	tests := []struct {
		name   string
		params SuperuserParams
	}{
		{
			name:   "is_staff false",
			params: SuperuserParams{CreateUserParams: base, IsStaff: boolPtr(false)},
		},
		{
			name:   "is_active false",
			params: SuperuserParams{CreateUserParams: base, IsActive: boolPtr(false)},
		},
		{
			name: "both false",
			params: SuperuserParams{
				CreateUserParams: base,
				IsStaff:          boolPtr(false),
				IsActive:         boolPtr(false),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateSuperuser(nil, tt.params)
			assert.ErrorIs(t, err, ErrSuperuserFlags)
		})
	}
}

func TestCreateSuperuser_PasswordStillRequired(t *testing.T) {
	_, err := CreateSuperuser(nil, SuperuserParams{
		CreateUserParams: CreateUserParams{
			Email:    "admin@example.com",
			Username: "admin",
		},
		IsStaff:  boolPtr(true),
		IsActive: boolPtr(true),
	})

	assert.ErrorIs(t, err, ErrPasswordRequired)
}
