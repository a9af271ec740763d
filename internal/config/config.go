// Package config loads console configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the console needs to reach the campus
// safety platform.
type Config struct {
	APIBaseURL  string
	SocketURL   string
	DataDir     string
	LogLevel    string
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg := &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
		SocketURL:   getEnv("SOCKET_URL", "ws://localhost:8080/ws"),
		DataDir:     getEnv("DATA_DIR", "data"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}

	return cfg, nil
}

// SessionPath returns the location of the persisted session record.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

// CachePath returns the location of the collection snapshot database.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "campus-safe-admin.db")
}

// LogPath returns the location of the console log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "campus-safe-admin.log")
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
