// Package cli provides common initialization utilities for the moneybags
// entry point: logging, .env loading, configuration and store setup.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"moneybags/internal/config"
	"moneybags/internal/log"
	"moneybags/internal/store"
)

// SetupLogger initializes structured logging with default settings and sets
// it as the process default.
func SetupLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = LogLevelFromEnv()
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore creates the configured snapshot store.
// Returns the store or exits the process on failure.
func OpenStore(logger *log.Logger, cfg *config.Config) store.Store {
	st, err := store.Open(store.Config{
		Type:         store.Type(cfg.StoreBackend),
		LedgerFile:   cfg.LedgerFile,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	return st
}

// LogLevelFromEnv returns the slog level selected by LOG_LEVEL, defaulting
// to info.
func LogLevelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
