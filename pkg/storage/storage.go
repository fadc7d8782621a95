// Package storage keeps the last submission snapshot. Every backend holds
// one value per key and overwrites on Put.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the slot the last successful response is written to.
const DefaultKey = "formData"

// ErrNotFound is returned by Get when nothing has been stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// ErrEmptyKey is returned when an operation receives an empty key.
var ErrEmptyKey = errors.New("storage: key is required")

// Store persists serialized snapshots.
type Store interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Close() error
}

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}

func contextErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
