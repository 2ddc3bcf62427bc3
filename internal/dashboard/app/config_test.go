package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Pin the variables this test asserts on, in case the host
	// environment sets them.
	for _, key := range []string{
		"USERDASH_API_URL", "USERDASH_HTTP_TIMEOUT", "USERDASH_RATE_LIMIT",
		"USERDASH_RATE_BURST", "ENV", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Equal(t, "http://localhost:3000/api", cfg.APIBaseURL)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, float64(20), cfg.RequestsPerSec)
	require.Equal(t, 40, cfg.Burst)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("USERDASH_API_URL", "https://users.example.com/api")
	t.Setenv("USERDASH_CREDENTIALS_FILE", "/tmp/creds.db")
	t.Setenv("USERDASH_HTTP_TIMEOUT", "30s")
	t.Setenv("USERDASH_RATE_LIMIT", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	require.Equal(t, "https://users.example.com/api", cfg.APIBaseURL)
	require.Equal(t, "/tmp/creds.db", cfg.CredentialsFile)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, float64(5), cfg.RequestsPerSec)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestDurationFallsBackToSeconds(t *testing.T) {
	t.Setenv("USERDASH_HTTP_TIMEOUT", "45")

	cfg := LoadConfig()
	require.Equal(t, 45*time.Second, cfg.HTTPTimeout)
}
