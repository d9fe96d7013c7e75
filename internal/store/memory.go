package store

import (
	"context"
	"sync"

	"moneybags/internal/core"
)

// Memory keeps the snapshot in process memory. Used by tests and for
// throwaway sessions; contents vanish when the process exits.
type Memory struct {
	mu     sync.Mutex
	ledger *core.Ledger
}

func NewMemory() *Memory {
	return &Memory{ledger: core.NewLedger()}
}

// Load returns a deep copy so callers never alias the stored snapshot.
func (m *Memory) Load(_ context.Context) (*core.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Clone(), nil
}

// Save replaces the stored snapshot with a deep copy of the ledger.
func (m *Memory) Save(_ context.Context, ledger *core.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = ledger.Clone()
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
