// Package tokenstore persists the admin's auth token between runs.
package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/abgdnv/gocommerce-admin/pkg/config"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("tokenstore: key not found")

// Store is a small persistent key-value store.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}

// Open builds the Store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.TokenStoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.TokenStoreSQLite:
		return NewSQLiteStore(ctx, cfg.SQLite.Path)
	case config.TokenStoreRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.TokenStoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown tokenstore driver: %q", cfg.Driver)
	}
}
