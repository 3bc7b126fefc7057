// Package kv defines the durable key-value port shared by the submission
// store, the rate limiter and the audit log, together with an in-memory
// adapter for development and tests and a Postgres adapter for production.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or its TTL has expired.
var ErrNotFound = errors.New("kv: not found")

// Store is an external durable mapping from string key to string value with
// optional per-key expiry. A zero ttl means the key does not expire.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
