// Package kv provides the durable, process-local key-value storage the
// application uses for state that must survive the remote store being
// unreachable: the local-fallback inquiry list and the bypass session flag.
package kv

import (
	"context"
	"errors"
)

// ErrConflict is returned by Update when a concurrent writer kept winning
// the optimistic transaction.
var ErrConflict = errors.New("kv: concurrent update conflict")

// UpdateFunc receives the current value (ok=false when the key is absent)
// and returns the value to store. Returning remove=true deletes the key.
type UpdateFunc func(current string, ok bool) (next string, remove bool, err error)

// Store is a string key-value store. All implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Update performs an atomic read-modify-write of key. If fn returns an
	// error nothing is written and the error is returned as-is.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
