// Package kv defines the flat hash/set key-value contract the record stores
// run on, with a Redis driver for production and an in-memory driver for
// tests and local development.
package kv

import "context"

// Batch collects write operations that are committed atomically by Store.Tx.
// Batches are write-only: reads performed while building a batch go through
// the Store directly and see pre-batch state.
type Batch interface {
	HSet(key string, fields map[string]string)
	HDel(key string, fields ...string)
	SAdd(key string, members ...string)
	SRem(key string, members ...string)
	Set(key, value string)
	Del(key string)
}

// Store is the backend contract: hash operations for primary records and
// reverse indexes, set operations for tag membership, and scalar operations
// for monolithic blobs. Each call is atomic on its own; Tx makes a group of
// writes atomic together.
type Store interface {
	// Hash operations.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGet(ctx context.Context, key, field string) (value string, ok bool, err error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HDel(ctx context.Context, key string, fields ...string) error
	HLen(ctx context.Context, key string) (int64, error)

	// Set operations.
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)

	// Scalar operations.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error

	// Tx commits every write queued on the batch as one atomic unit.
	Tx(ctx context.Context, fn func(b Batch) error) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection, if any.
	Close() error
}
