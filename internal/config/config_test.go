package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TASKHIVE_DATABASE_DSN", "host=localhost user=taskhive dbname=taskhive")
	t.Setenv("TASKHIVE_AUTH_JWT_SECRET", "test-secret")
	t.Setenv("TASKHIVE_SERVER_PORT", "8080")
	t.Setenv("TASKHIVE_LOG_LEVEL", "debug")
	t.Setenv("TASKHIVE_ADMIN_EMAIL", "admin@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "host=localhost user=taskhive dbname=taskhive", cfg.Database.DSN)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TASKHIVE_DATABASE_DSN", "host=localhost dbname=taskhive")
	t.Setenv("TASKHIVE_AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "Taskhive", cfg.Site.Title)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.Admin.Email)
}

func TestLoad_RequiredKeys(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		t.Setenv("TASKHIVE_AUTH_JWT_SECRET", "test-secret")

		_, err := Load()
		assert.ErrorContains(t, err, "database.dsn")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("TASKHIVE_DATABASE_DSN", "host=localhost dbname=taskhive")

		_, err := Load()
		assert.ErrorContains(t, err, "auth.jwt_secret")
	})
}
