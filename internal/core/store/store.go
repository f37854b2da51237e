// Package store provides the key-value capability the usage tracker persists
// through. The KV interface is deliberately small (get/put/list/delete) and
// promises nothing about consistency: a Put may not be visible to a
// subsequent Get or ListKeys from another caller. Core logic is written
// against the interface so tests run on the in-memory driver.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/quotalens/quotalens/internal/config"
)

const (
	driverLibsql = "libsql"
	driverRedis  = "redis"
	driverMemory = "memory"
)

// KV is the capability surface over the key-value backend. Implementations
// must treat keys as an opaque flat namespace; ListKeys may return keys in
// any order.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put upserts the value under key; last write wins.
	Put(ctx context.Context, key string, value []byte) error

	// ListKeys enumerates keys beginning with prefix, in no guaranteed order.
	ListKeys(ctx context.Context, prefix string) ([]string, error)

	// Delete removes a key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Open initializes a key-value store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (KV, error) {
	driver := strings.TrimSpace(cfg.Driver)
	if driver == "" {
		driver = driverLibsql
	}

	if ctx == nil {
		ctx = context.Background()
	}

	switch driver {
	case driverLibsql:
		return openLibsql(ctx, cfg)
	case driverRedis:
		return openRedis(ctx, cfg)
	case driverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
}
