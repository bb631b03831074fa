package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// APIBaseURL is the root of the dashboard backend, e.g. http://localhost:8000.
	APIBaseURL string

	// LiveInterval controls how often the live grid header is refreshed.
	LiveInterval time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of live snapshots (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// Circuit breaker around the remote backend.
	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration

	LogLevel    string
	Environment string

	Port string
}

// LoadEnvFile loads variables from the given files (".env" when none are
// named) without overriding ones already set in the environment.
func LoadEnvFile(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.APIBaseURL = strings.TrimRight(getenvDefault("POWERCAST_API_URL", "http://localhost:8000"), "/")

	var err error
	if cfg.LiveInterval, err = getenvDuration("LIVE_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.LiveInterval <= 0 {
		return nil, fmt.Errorf("invalid LIVE_INTERVAL: must be positive")
	}

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 1800) // one hour at 2-second ticks

	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", time.Hour); err != nil {
		return nil, err
	}

	threshold := getenvInt("BREAKER_FAILURE_THRESHOLD", 5)
	if threshold < 1 {
		return nil, fmt.Errorf("invalid BREAKER_FAILURE_THRESHOLD: %d", threshold)
	}
	cfg.BreakerFailureThreshold = uint32(threshold)

	if cfg.BreakerOpenTimeout, err = getenvDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.Environment = getenvDefault("APP_ENV", "development")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
