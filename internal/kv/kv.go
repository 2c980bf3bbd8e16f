// Package kv provides the key-value blob store the directories persist into.
// Every collection is one JSON blob per key; there is no partial update at
// the storage layer.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is the minimal blob-store contract. The Redis implementation is the
// production store; callers never depend on anything beyond get/set/delete.
type Store interface {
	// Get returns the raw value at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value at key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	// Close releases the underlying connection.
	Close() error
}

// StorageError wraps a store failure so callers can distinguish it from
// domain errors.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
