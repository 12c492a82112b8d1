// Package cache provides pluggable byte caches for registry responses.
//
// Backends:
//   - FileCache: directory of flat entry files for CLI usage
//   - RedisCache: shared cache for multi-instance deployments
//   - MongoCache: document-store cache with expiry filtering
//   - NullCache: disables caching entirely
//
// Entries carry an optional TTL. Expired entries are treated as misses and
// removed lazily on read.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all caching backends implement.
//
// Implementations must treat a missing key as (nil, false, nil), not an
// error. Expired entries are equivalent to missing entries.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
