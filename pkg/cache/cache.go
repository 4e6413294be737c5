// Package cache stores parse results keyed by content hash.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything (caching disabled, tests).
//   - [FileCache] keeps entries as JSON files under a directory (CLI).
//   - [RedisCache] keeps entries in Redis (shared server deployments).
//
// Keys are built by a [Keyer] so that the same diagram text parsed with
// different options never shares an entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)
