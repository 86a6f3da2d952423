// Package kvstore provides interfaces and types for persistent key-value storage.
//
// It defines the Store interface that all storage implementations must satisfy.
// Values are opaque JSON documents; the core stores decide what goes under
// each key and how it is serialized.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates that no value is stored under the requested key.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the interface for persistent key-value storage backends.
//
// All storage implementations (SQLite, PostgreSQL, MySQL, in-memory) must
// implement this interface. Implementations must be safe for use from
// multiple goroutines.
type Store interface {
	// Get retrieves the value stored under key.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - key: The key to look up
	//
	// Returns the stored bytes, or ErrKeyNotFound if the key has no value.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - key: The key to write
	//   - value: The bytes to store (typically a JSON document)
	//
	// Returns an error if the write fails.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key.
	// Deleting a key that has no value is not an error.
	Delete(ctx context.Context, key string) error

	// Close closes the store and releases resources.
	Close() error
}
