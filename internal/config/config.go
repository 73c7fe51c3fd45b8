package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabasePath     string
	JWTSecret        string        // Symmetric signing key for session tokens
	TokenTTL         time.Duration // Validity window of an issued token
	LogRetentionDays int           // Age after which request logs and events are purged
	AllowedOrigins   []string
}

// ErrMissingSecret is returned when JWT_SECRET is not set. There is no
// default: the signing key must come from the environment.
var ErrMissingSecret = errors.New("JWT_SECRET must be set")

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, err
	}

	retention, err := strconv.Atoi(getEnv("LOG_RETENTION_DAYS", "30"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./identity.db"),
		JWTSecret:        secret,
		TokenTTL:         ttl,
		LogRetentionDays: retention,
		AllowedOrigins:   []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
