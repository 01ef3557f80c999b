// Package storage defines the backend-agnostic key-value store used to
// persist task lists.
package storage

import (
	"context"
	"errors"
)

// ErrKeyRequired is returned when an operation is given a blank key.
var ErrKeyRequired = errors.New("key is required")

// Store is a string key-value store.
// All backends live under internal/backend; the rest of the program only
// sees this interface.
type Store interface {
	// Get returns the value stored under key.
	// ok is false when the key is absent; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys returns the stored keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases resources held by the store.
	Close() error
}
