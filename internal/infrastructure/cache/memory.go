package cache

import (
	"context"
	"strings"
	"time"

	"jbfsport-backend/pkg/cache"
	"jbfsport-backend/pkg/logger"

	"github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache service
// defaultExpiration: default TTL for items
// cleanupInterval: how often to scan for expired items
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, found := c.store.Get(key)
	if !found {
		return false
	}
	b, ok := raw.([]byte)
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("cache: decode failed")
		return false
	}
	return true
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, duration time.Duration) {
	b, err := json.Marshal(value)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("cache: encode failed")
		return
	}
	c.store.Set(key, b, duration)
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		c.store.Delete(k)
	}
}

func (c *memoryCache) DeletePrefix(_ context.Context, prefix string) {
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
		}
	}
}

func (c *memoryCache) Flush(context.Context) {
	c.store.Flush()
}
