package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"cafecopilot/internal/config"
)

// Document names for the three cafe collections
const (
	MenuDocument      = "menu"
	OrdersDocument    = "orders"
	InventoryDocument = "inventory"
)

var ErrInvalidName = errors.New("invalid document name")

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store persists named JSON documents
type Store interface {
	// Get returns the raw document and whether it exists
	Get(ctx context.Context, name string) ([]byte, bool, error)

	// Put replaces the whole document
	Put(ctx context.Context, name string, data []byte) error

	Close() error
}

// Load decodes the named document into a T. An absent document is created
// from def and def is returned.
func Load[T any](ctx context.Context, s Store, name string, def T) (T, error) {
	var zero T

	data, ok, err := s.Get(ctx, name)
	if err != nil {
		return zero, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if !ok {
		if err := Save(ctx, s, name, def); err != nil {
			return zero, err
		}
		return def, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return v, nil
}

// Save pretty-prints v and rewrites the named document
func Save[T any](ctx context.Context, s Store, name string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := s.Put(ctx, name, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

// Open creates the store selected by cfg.Driver
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.DriverFile:
		return NewFileStore(cfg.DataDir)
	case config.DriverSQLite, config.DriverPostgres:
		return OpenDocumentStore(cfg.Driver, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
