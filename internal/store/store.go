// Package store persists ledger snapshots. The ledger is the unit of
// persistence: Load produces a fully deserialized ledger, Save replaces the
// previous snapshot with the current one. Three backends exist: a JSON file
// (default), SQLite, and an in-process memory store for tests.
package store

import (
	"context"
	"fmt"

	"moneybags/internal/core"
	"moneybags/internal/log"
)

// Store loads and saves ledger snapshots. Implementations must round-trip
// the three collections and the minor-unit integers losslessly.
type Store interface {
	Load(ctx context.Context) (*core.Ledger, error)
	Save(ctx context.Context, ledger *core.Ledger) error
	Close() error
}

// Type selects a store backend.
type Type string

const (
	JSONStore   Type = "json"
	SQLiteStore Type = "sqlite"
	MemoryStore Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the store type is valid
func (t Type) IsValid() bool {
	switch t {
	case JSONStore, SQLiteStore, MemoryStore:
		return true
	default:
		return false
	}
}

// Config holds configuration for store creation
type Config struct {
	Type Type

	// JSON specific
	LedgerFile string

	// SQLite specific
	SQLiteDBPath string
}

// Open creates a store for the configured backend.
func Open(cfg Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent("store")

	switch cfg.Type {
	case JSONStore:
		s, err := NewFileStore(cfg.LedgerFile)
		if err != nil {
			return nil, fmt.Errorf("initialize json store: %w", err)
		}
		logger.Info("Initialized json store", "path", s.Path())
		return s, nil
	case SQLiteStore:
		s, err := NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite store", "db_path", cfg.SQLiteDBPath)
		return s, nil
	case MemoryStore:
		logger.Info("Initialized memory store")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("invalid store type: %s", cfg.Type)
	}
}
