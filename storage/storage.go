// Package storage persists the named values that make up a finpal ledger.
//
// A Backend behaves like a small key/value store: each collection
// (transactions, budgets, goals) and each preference (theme, offline mode)
// is saved under its own key as an opaque JSON document.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Driver names accepted by Open.
const (
	FileDriver   = "file"
	SQLiteDriver = "sqlite"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// Backend stores opaque values under string keys.
type Backend interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes every stored value.
	Clear(ctx context.Context) error
	// Close releases the resources held by the backend.
	Close() error
}

// Open returns the backend for driver rooted at dataDir.
func Open(driver, dataDir string) (Backend, error) {
	switch driver {
	case "", FileDriver:
		return NewFileBackend(afero.NewOsFs(), dataDir)
	case SQLiteDriver:
		if err := afero.NewOsFs().MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
		}
		return NewSQLiteBackend(filepath.Join(dataDir, "finpal.db"))
	default:
		return nil, fmt.Errorf("unknown storage driver: %s (must be %s or %s)", driver, FileDriver, SQLiteDriver)
	}
}
