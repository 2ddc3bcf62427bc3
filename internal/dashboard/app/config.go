package app

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string        // Base URL of the user-management API (default: http://localhost:3000/api)
	CredentialsFile string        // Path to the SQLite credentials database; empty disables persistence
	Env             string        // Environment (dev, staging, prod) (default: dev)
	LogLevel        string        // Log level (debug, info, warn, error) (default: info)
	LogFormat       string        // Log format (json, text) (default: text)
	HTTPTimeout     time.Duration // Per-request timeout (default: 10s)
	RequestsPerSec  float64       // Client-side rate limit; <= 0 disables (default: 20)
	Burst           int           // Rate limit burst (default: 40)
}

// LoadConfig resolves configuration from the environment once at
// startup. A .env file in the working directory is loaded first when
// present; real environment variables win over it.
func LoadConfig() Config {
	// godotenv.Load never overwrites variables that are already set.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:      getEnvOrDefault("USERDASH_API_URL", "http://localhost:3000/api"),
		CredentialsFile: getEnvOrDefault("USERDASH_CREDENTIALS_FILE", defaultCredentialsFile()),
		Env:             getEnvOrDefault("ENV", "dev"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "text"),
		HTTPTimeout:     getEnvDurationOrDefault("USERDASH_HTTP_TIMEOUT", 10*time.Second),
		RequestsPerSec:  getEnvFloatOrDefault("USERDASH_RATE_LIMIT", 20),
		Burst:           getEnvIntOrDefault("USERDASH_RATE_BURST", 40),
	}
}

// defaultCredentialsFile places the credential database under the
// user's home directory. When the home directory cannot be resolved the
// session simply does not persist.
func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".userdash", "credentials.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g. "30s", "2m")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
