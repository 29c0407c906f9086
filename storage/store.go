// Package storage provides the string-keyed blob store the session layer
// persists tokens into. Backends are interchangeable: an in-memory map, a
// JSON file on disk, or Redis.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("storage: key not found")

// Store is an asynchronous string-keyed blob store. There are no
// transactional guarantees across keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
}
