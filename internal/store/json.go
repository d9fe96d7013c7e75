package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"moneybags/internal/core"
)

// FileStore persists the ledger as a single JSON snapshot file. A missing
// file loads as an empty ledger; saves go through a temp file and rename so a
// crash mid-write never leaves a truncated snapshot.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at the given path. A leading "~/" is
// expanded to the user's home directory.
func NewFileStore(path string) (*FileStore, error) {
	expanded, err := expandTilde(path)
	if err != nil {
		return nil, fmt.Errorf("resolve ledger path: %w", err)
	}
	return &FileStore{path: expanded}, nil
}

// Path returns the resolved snapshot path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file yields a fresh empty ledger.
func (s *FileStore) Load(_ context.Context) (*core.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	ledger := core.NewLedger()
	if err := json.Unmarshal(data, ledger); err != nil {
		return nil, fmt.Errorf("parse ledger file %s: %w", s.path, err)
	}
	if ledger.Rates == nil {
		ledger.Rates = make(map[string]core.Rate)
	}
	return ledger, nil
}

// Save writes the snapshot atomically.
func (s *FileStore) Save(_ context.Context, ledger *core.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".moneybags-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

func expandTilde(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
