// Package kvstore provides the durable device-local key-value store that
// every mirror cache is built on. Keys are plain strings, values are opaque
// byte slices; each Get/Set/Delete is atomic at single-key granularity and
// there are no multi-key transactions. The store never expires entries:
// staleness, where it matters, is computed by consumers from timestamps.
package kvstore

import "context"

// Store describes the persistence contract consumed by the caches.
type Store interface {
	// Get returns the value stored under key, or common.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set durably replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying database.
	Close() error
}
