package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Snapshot file for the json store
	LedgerFile string

	// Store selection
	StoreBackend string

	// SQLite
	SQLiteDBPath string

	// Year used when expanding "monthly" costs
	ReferenceYear int

	// Persist after every successful mutation
	Autosave bool
}

func Load() *Config {
	cfg := &Config{
		LedgerFile:    getEnv("MONEYBAGS_FILE", "~/.moneybags"),
		StoreBackend:  getEnv("MONEYBAGS_BACKEND", "json"),
		SQLiteDBPath:  getEnv("MONEYBAGS_SQLITE_PATH", "./data/moneybags.db"),
		ReferenceYear: getEnvInt("MONEYBAGS_YEAR", time.Now().Year()),
		Autosave:      getEnvBool("MONEYBAGS_AUTOSAVE", false),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"json", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.StoreBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of %v", c.StoreBackend, validBackends))
	}

	if c.StoreBackend == "json" && c.LedgerFile == "" {
		errors = append(errors, "ledger file path cannot be empty when using json backend")
	}

	if c.StoreBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.ReferenceYear < 1 || c.ReferenceYear > 9999 {
		errors = append(errors, fmt.Sprintf("invalid reference year %d: must render as four digits", c.ReferenceYear))
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
