// Package cli provides common bootstrap utilities shared by cmd/billetera
// and cmd/recurring-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"billetera/internal/config"
	applog "billetera/internal/log"
	"billetera/internal/storage"
)

// SetupLogger initializes structured logging with default settings and
// installs it as the process default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the key-value database and wraps it in a wallet store.
// Returns the store and KV handle or exits the process on failure.
func InitStore(logger *applog.Logger, dbPath string) (*storage.WalletStore, *storage.KV) {
	kv, err := storage.NewKV(dbPath)
	if err != nil {
		logger.Error("Failed to open wallet database", applog.FieldError, err, applog.FieldPath, dbPath)
		os.Exit(1)
	}
	return storage.NewWalletStore(kv), kv
}
