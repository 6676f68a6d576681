package kvstore

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrClosed is returned when the store is used after Close.
var ErrClosed = errors.New("kvstore: store is closed")

// Store is an expiring key-value store.
//
// Get returns goerror.ErrNotFound when the key is absent or expired.
type Store interface {
	io.Closer

	// Get returns the value stored at key.
	Get(ctx context.Context, key string) (string, error)
	// Exists reports whether key holds a live value.
	Exists(ctx context.Context, key string) (bool, error)
	// Set stores value at key, replacing any previous value and TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr atomically increments the integer at key and returns the new value.
	// When the new value is 1 the key expires after ttl; later increments keep
	// the original deadline.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Expire resets the TTL of an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// Del removes the given keys. Missing keys are ignored.
	Del(ctx context.Context, keys ...string) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
