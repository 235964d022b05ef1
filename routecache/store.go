package routecache

import (
	"context"
	"errors"
)

// Store errors.
var (
	// ErrNotFound is returned by Store.Get when the key is absent.
	ErrNotFound = errors.New("routecache: key not found")

	// ErrInvalidKey is returned for keys a store cannot represent.
	ErrInvalidKey = errors.New("routecache: invalid key")
)

// Store is a byte-oriented key/value backend without expiry.
type Store interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
