// Package directory implements the Company and Candidate directories: two
// independent top-level collections persisted as whole JSON blobs in the
// key-value store. Every mutation is one read-modify-write cycle with no
// locking; concurrent writers to the same collection race and the last
// write wins, which is acceptable at HR-dashboard concurrency.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xxracer/clearcomply2.1/internal/kv"
)

// Storage keys, one blob per collection.
const (
	CompaniesKey  = "companies_list"
	CandidatesKey = "candidates_list"
)

// NotFoundError reports a missing company, process or candidate.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError reports a rejected mutation (bad status value, deleting
// the last process, and so on).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// loadCollection reads and decodes a whole collection blob. A missing key is
// an empty collection, not an error.
func loadCollection[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

// saveCollection encodes and overwrites a whole collection blob.
func saveCollection[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}
