// Package cache provides storage backends for fetched popover content.
//
// Remote popover bodies are small markup fragments that rarely change, so
// the fetcher can keep them across interactions instead of refetching on
// every show. The Cache interface has four implementations:
//
//   - MemoryCache: process-local, for single-process hosts and tests
//   - FileCache: filesystem-backed, for CLI usage (~/.cache/popover/)
//   - RedisCache: shared, for multi-instance server deployments
//   - NullCache: disables caching
//
// Entries carry a TTL; expired entries read as misses. Keys are namespaced
// with ContentKey so backends can be shared with other data.
package cache

import (
	"context"
	"time"
)

// Cache stores fetched content keyed by URL-derived keys.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ContentKey derives the cache key for a content URL. The URL is hashed so
// keys stay filesystem- and redis-safe regardless of URL length or
// characters.
func ContentKey(url string) string {
	return "content:" + Hash([]byte(url))
}
