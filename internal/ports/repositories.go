package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStorage.Get for keys that were never set or were removed.
var ErrKeyNotFound = errors.New("key not found")

// Fixed keys of the persisted state blobs.
const (
	TodoStateKey  = "todo"
	ThemeStateKey = "theme"
)

// KeyValueStorage defines the persistence medium behind the state stores.
// Implementations must be safe for concurrent use.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// HealthChecker is implemented by storage backends that can report connectivity.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ConnectionReporter is implemented by backends with a connection pool.
type ConnectionReporter interface {
	ConnectionInfo() map[string]interface{}
}
