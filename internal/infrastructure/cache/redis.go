package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jbfsport-backend/pkg/cache"
	"jbfsport-backend/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix is shared by the API and the admin CLI so both see the same keys.
const DefaultKeyPrefix = "jbfsport:"

// scanBatch is both the SCAN count hint and the number of keys per DEL.
const scanBatch = 100

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key so several deployments can share one redis.
	KeyPrefix string
}

type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (cache.CacheService, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisCache{client: client, prefix: cfg.KeyPrefix}, client.Close, nil
}

func (c *redisCache) key(k string) string {
	return c.prefix + k
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) bool {
	b, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("cache: redis get failed")
		}
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("cache: decode failed")
		return false
	}
	return true
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, duration time.Duration) {
	b, err := json.Marshal(value)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("cache: encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(key), b, duration).Err(); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("cache: redis set failed")
	}
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Strs("keys", keys).Msg("cache: redis delete failed")
	}
}

func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, c.key(prefix)+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			c.del(ctx, prefix, batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		c.del(ctx, prefix, batch)
	}
	if err := iter.Err(); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("prefix", prefix).Msg("cache: redis scan failed")
	}
}

func (c *redisCache) del(ctx context.Context, prefix string, fullKeys []string) {
	if err := c.client.Del(ctx, fullKeys...).Err(); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("prefix", prefix).Int("keys", len(fullKeys)).Msg("cache: redis delete failed")
	}
}

// Flush only removes this cache's namespace, never the whole redis database.
func (c *redisCache) Flush(ctx context.Context) {
	c.DeletePrefix(ctx, "")
}
