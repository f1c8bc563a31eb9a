package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_PATH", "JWT_SECRET", "JWT_EXPIRY", "CORS_ALLOWED_ORIGINS", "MAINTENANCE_CRON", "LOG_LEVEL", "APP_ENV"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./devconnect.db", cfg.DatabasePath)
	assert.Equal(t, devSecret, cfg.JWTSecret)
	assert.Equal(t, 100*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "0 3 * * *", cfg.MaintenanceCron)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList("http://a, http://b ,"))
	assert.Nil(t, splitList(" , "))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/x.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "15m")
	t.Setenv("MAINTENANCE_CRON", "*/5 * * * *")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, "*/5 * * * *", cfg.MaintenanceCron)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "eighty"}},
		{"bad expiry", map[string]string{"PORT": "8080", "JWT_EXPIRY": "soon"}},
		{"negative expiry", map[string]string{"PORT": "8080", "JWT_EXPIRY": "-1h"}},
		{"default secret in production", map[string]string{"PORT": "8080", "JWT_EXPIRY": "1h", "JWT_SECRET": devSecret, "APP_ENV": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
