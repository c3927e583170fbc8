package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeEnv(t, `
APP_PORT=9090
APP_ENV=production
CORS_ALLOWED_ORIGINS=https://a.clinic.test, https://b.clinic.test ,
DB_HOST=db
DB_PORT=5432
DB_MIGRATE=true
DB_MAX_OPEN_CONNS=20
DB_CONN_MAX_LIFETIME=10m
REDIS_DB=2
JWT_SECRET=secret
JWT_ACCESS_EXPIRY=30m
IDENTITY_CACHE_TTL=90s
POLICY_FILE=config/policy.yaml
LOG_LEVEL=debug
LOG_FILE=logs/app.log
LOG_COMPRESS=true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, []string{"https://a.clinic.test", "https://b.clinic.test"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, 10*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 90*time.Second, cfg.Identity.CacheTTL)
	assert.Equal(t, "config/policy.yaml", cfg.Policy.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logs/app.log", cfg.Log.File)
	assert.True(t, cfg.Log.Compress)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeEnv(t, "JWT_SECRET=secret\nJWT_ACCESS_EXPIRY=soon\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 5*time.Minute, cfg.Identity.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Policy.File)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	path := writeEnv(t, "APP_PORT=9090\n")
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadPolicy(t *testing.T) {
	policy, err := LoadPolicy("policy.yaml")
	require.NoError(t, err)

	assert.Len(t, policy.Capabilities, 10)
	assert.NotEmpty(t, policy.Routes)
	assert.NotEmpty(t, policy.Menu)

	var found bool
	for _, route := range policy.Routes {
		if route.Name == "secretary-dashboard" {
			found = true
			assert.Equal(t, []string{"Receptionist"}, route.Roles)
			assert.Empty(t, route.Capability)
		}
	}
	assert.True(t, found)

	_, err = LoadPolicy("missing.yaml")
	assert.Error(t, err)
}
