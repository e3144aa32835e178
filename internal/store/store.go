// Package store provides durable key-value storage with SQLite and Redis backends.
package store

import (
	"context"
	"errors"
)

// ErrDecode marks a stored value that exists but cannot be decoded.
var ErrDecode = errors.New("decode stored value")

// KV is a string-valued key-value view.
type KV interface {
	// GetString returns the value for key and whether it exists.
	GetString(ctx context.Context, key string) (string, bool, error)

	// SetString overwrites the value for key.
	SetString(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Store is a durable KV with atomic multi-key updates.
type Store interface {
	KV

	// Update runs fn against a transactional view. Writes made through the view
	// are committed together when fn returns nil and discarded otherwise.
	Update(ctx context.Context, fn func(tx KV) error) error

	// Close releases the backend.
	Close() error
}
