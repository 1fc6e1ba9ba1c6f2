package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "DB_PATH", "TZ", "SECRET_KEY", "REDIS_ADDR",
		"REDIS_PASSWORD", "REDIS_DB", "DASHBOARD_CACHE_TTL", "LOG_DIR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", validSecret)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvironmentDevelopment, cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, filepath.Join("data", "wellnest.db"), cfg.DBPath)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 5*time.Minute, cfg.DashboardCacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	if _, err := time.LoadLocation("Europe/Berlin"); err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	clearEnv(t)
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("PORT", "9090")
	t.Setenv("TZ", "Europe/Berlin")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DASHBOARD_CACHE_TTL", "90s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 90*time.Second, cfg.DashboardCacheTTL)
}

func TestLoadReadsDotEnvFileWithEnvironmentPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "SECRET_KEY=" + validSecret + "\nPORT=7070\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, validSecret, cfg.SecretKey)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingDotEnvIsNotAnError(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", validSecret)

	_, err := Load(t.TempDir())
	require.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "environment", key: "ENVIRONMENT", value: "staging"},
		{name: "port", key: "PORT", value: "70000"},
		{name: "timezone", key: "TZ", value: "Mars/Olympus"},
		{name: "cache ttl", key: "DASHBOARD_CACHE_TTL", value: "-1m"},
		{name: "log level", key: "LOG_LEVEL", value: "loud"},
		{name: "redis db", key: "REDIS_DB", value: "-1"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SECRET_KEY", validSecret)
			t.Setenv(testCase.key, testCase.value)

			_, err := Load("")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), testCase.key)
		})
	}
}

func TestResolveSecretKey(t *testing.T) {
	for _, raw := range []string{"", "change_me_in_production", "replace_with_at_least_32_random_characters", "too-short-secret"} {
		_, err := ResolveSecretKey(raw)
		assert.ErrorIs(t, err, ErrInvalidConfig, "secret %q", raw)
	}

	secret, err := ResolveSecretKey("  " + validSecret + "  ")
	require.NoError(t, err)
	assert.Equal(t, validSecret, secret)
}

func TestResolvePort(t *testing.T) {
	port, err := ResolvePort("")
	require.NoError(t, err)
	assert.Equal(t, "8080", port)

	port, err = ResolvePort("9090")
	require.NoError(t, err)
	assert.Equal(t, "9090", port)

	for _, raw := range []string{"0", "70000", "not-a-number"} {
		_, err := ResolvePort(raw)
		assert.Error(t, err, "port %q", raw)
	}
}
