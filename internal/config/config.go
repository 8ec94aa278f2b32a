package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBPath string

	// Default wallet used when no active wallet has been persisted yet.
	DefaultWallet string

	// Worker
	RecurringSchedule string
	ShutdownTimeout   time.Duration
}

func Load() *Config {
	return &Config{
		DBPath:            getEnv("BILLETERA_DB_PATH", "./data/billetera.db"),
		DefaultWallet:     getEnv("BILLETERA_DEFAULT_WALLET", "personal"),
		RecurringSchedule: getEnv("BILLETERA_RECURRING_SCHEDULE", "@hourly"),
		ShutdownTimeout:   getEnvDuration("BILLETERA_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else {
		dir := filepath.Dir(c.DBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if strings.TrimSpace(c.DefaultWallet) == "" {
		errors = append(errors, "default wallet cannot be empty")
	}

	if c.RecurringSchedule == "" {
		errors = append(errors, "recurring schedule cannot be empty")
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
