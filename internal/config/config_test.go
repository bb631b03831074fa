package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"POWERCAST_API_URL", "LIVE_INTERVAL", "STORE_MAX_HISTORY", "STORE_MAX_AGE",
		"BREAKER_FAILURE_THRESHOLD", "BREAKER_OPEN_TIMEOUT",
		"LOG_LEVEL", "APP_ENV", "PORT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Second, cfg.LiveInterval)
	assert.Equal(t, 1800, cfg.StoreMaxHistory)
	assert.Equal(t, time.Hour, cfg.StoreMaxAge)
	assert.Equal(t, uint32(5), cfg.BreakerFailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.BreakerOpenTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POWERCAST_API_URL", "https://api.example.test/")
	t.Setenv("LIVE_INTERVAL", "5s")
	t.Setenv("STORE_MAX_HISTORY", "10")
	t.Setenv("BREAKER_FAILURE_THRESHOLD", "3")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.LiveInterval)
	assert.Equal(t, 10, cfg.StoreMaxHistory)
	assert.Equal(t, uint32(3), cfg.BreakerFailureThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("LIVE_INTERVAL", "often")
	_, err := Load()
	assert.ErrorContains(t, err, "LIVE_INTERVAL")

	t.Setenv("LIVE_INTERVAL", "")
	t.Setenv("BREAKER_FAILURE_THRESHOLD", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "BREAKER_FAILURE_THRESHOLD")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("POWERCAST_API_URL=http://from-file:8000\nPORT=9090\n"), 0o600))

	t.Setenv("POWERCAST_API_URL", "")
	require.NoError(t, os.Unsetenv("POWERCAST_API_URL"))
	t.Setenv("PORT", "7070")

	require.NoError(t, LoadEnvFile(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:8000", cfg.APIBaseURL)
	// Variables already in the environment win over the file.
	assert.Equal(t, "7070", cfg.Port)

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
