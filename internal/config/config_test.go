package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	keys := []string{
		"PORT", "STORAGE_DRIVER", "DATABASE_URL", "JWT_SECRET", "JWT_ISSUER", "JWT_TTL_MINUTES",
		"CORS_ALLOWED_ORIGINS", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "LOGIN_RATE_LIMIT",
		"ADMIN_EMAIL", "ADMIN_PASSWORD", "ADMIN_NAME", "TRUST_PROXY_HEADERS",
	}
	for _, key := range keys {
		t.Setenv(key, values[key])
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL": "postgres://localhost/society",
		"JWT_SECRET":   "secret",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "society-backend", cfg.JWTIssuer)
	assert.Equal(t, time.Duration(0), cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.TrustProxy)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.Admin.Enabled())
	assert.Equal(t, ":8080", cfg.HTTPAddress())
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"PORT":                 "9000",
		"STORAGE_DRIVER":       "Memory",
		"JWT_SECRET":           "secret",
		"JWT_TTL_MINUTES":      "30",
		"CORS_ALLOWED_ORIGINS": "http://localhost:3000, https://society.example ,",
		"REDIS_ADDR":           "localhost:6379",
		"REDIS_DB":             "2",
		"LOGIN_RATE_LIMIT":     "3",
		"ADMIN_EMAIL":          "admin@society.example",
		"ADMIN_PASSWORD":       "changeme",
		"TRUST_PROXY_HEADERS":  "true",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://society.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 3, cfg.LoginRateLimit)
	assert.True(t, cfg.TrustProxy)
	assert.True(t, cfg.Admin.Enabled())
	assert.Equal(t, "Administrator", cfg.Admin.Name)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without database url", env: map[string]string{"JWT_SECRET": "secret"}},
		{name: "missing jwt secret", env: map[string]string{"STORAGE_DRIVER": "memory"}},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "sqlite", "JWT_SECRET": "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
