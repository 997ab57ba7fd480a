package cache

import (
	"context"
	"time"
)

// CacheService defines the behavior for caching mechanisms.
// Values are stored JSON-encoded so the same callers work with the
// in-process and the redis backend.
type CacheService interface {
	// Get decodes the cached value into dest.
	// Returns false on a miss or on any backend/decoding failure.
	Get(ctx context.Context, key string, dest interface{}) bool

	// Set adds a value to the cache with a duration
	Set(ctx context.Context, key string, value interface{}, duration time.Duration)

	// Delete removes values from the cache
	Delete(ctx context.Context, keys ...string)

	// DeletePrefix removes every key starting with prefix
	DeletePrefix(ctx context.Context, prefix string)

	// Flush removes all items
	Flush(ctx context.Context)
}
