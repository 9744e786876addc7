package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Read when the key has no stored value.
// Callers treat it as absence, never as a failure.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is the string-keyed persistence boundary behind both the session
// state and the task collection. Values are UTF-8 text.
type Store interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
