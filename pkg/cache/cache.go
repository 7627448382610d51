// Package cache provides the response cache used by the YouTube API client.
//
// Three backends implement the [Cache] interface:
//   - [FileCache]: file-based storage under the user cache directory (the
//     CLI default)
//   - [RedisCache]: Redis-backed storage for long-running serve deployments
//   - [NullCache]: a no-op backend for --no-cache and tests
//
// Keys are arbitrary strings; backends hash them where the storage requires
// safe names. Entries carry a TTL so quota-expensive API responses can be
// reused across runs without going stale forever.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default lifetime of a cached API response.
const DefaultTTL = 24 * time.Hour

// Cache stores raw response bytes under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and fresh; expired or missing entries are a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Key builds a namespaced cache key from the request parameters.
// The parts are joined and hashed so long queries produce safe, fixed-size
// keys; the prefix stays readable for debugging.
func Key(prefix string, parts ...string) string {
	joined := ""
	for _, p := range parts {
		joined += p + "\x00"
	}
	return prefix + ":" + Hash([]byte(joined))
}
