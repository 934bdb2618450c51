package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{
			name: "valid user",
			user: User{Email: "ana@example.com", Username: "ana"},
		},
		{
			name:    "missing email",
			user:    User{Username: "ana"},
			wantErr: ErrEmailRequired,
		},
		{
			name:    "missing username",
			user:    User{Email: "ana@example.com"},
			wantErr: ErrUsernameRequired,
		},
		{
			name: "username with allowed specials",
			user: User{Email: "ana@example.com", Username: "ana.s+test@x_1-2"},
		},
		{
			name:    "username with space",
			user:    User{Email: "ana@example.com", Username: "ana s"},
			wantErr: ErrInvalidUsername,
		},
		{
			name:    "username with slash",
			user:    User{Email: "ana@example.com", Username: "ana/s"},
			wantErr: ErrInvalidUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUser_ValidateDefaults(t *testing.T) {
	user := User{Email: "ana@example.com", Username: "ana"}
	require.NoError(t, user.Validate())

	assert.Equal(t, LanguageEnglish, user.LanguagePref)
	assert.Equal(t, ThemeDefault, user.Theme)
	assert.False(t, user.DateJoined.IsZero())
}

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{
			name: "both names",
			user: User{FirstName: "Ana", LastName: "Sari", Email: "ana@example.com"},
			want: "Ana Sari",
		},
		{
			name: "first name only",
			user: User{FirstName: "Ana", Email: "ana@example.com"},
			want: "Ana",
		},
		{
			name: "last name only",
			user: User{LastName: "Sari", Email: "ana@example.com"},
			want: "Sari",
		},
		{
			name: "falls back to email",
			user: User{Email: "ana@example.com"},
			want: "ana@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.FullName())
		})
	}
}

func TestUser_ShortName(t *testing.T) {
	assert.Equal(t, "Ana", (&User{FirstName: "Ana", Username: "ana.s"}).ShortName())
	assert.Equal(t, "ana.s", (&User{Username: "ana.s"}).ShortName())
}
