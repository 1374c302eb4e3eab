package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/friendgraph/config"
	"github.com/d60-Lab/friendgraph/pkg/logger"
)

// NewClient returns nil when redis is disabled; every consumer treats a nil
// client as "no cache".
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// JSONCache is a cache-aside helper storing JSON payloads under a key prefix.
// Redis failures are logged and fall through to the loader.
type JSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// GetOrLoad returns the cached value for key or, on a miss, the result of load, which is then stored.
func GetOrLoad[T any](ctx context.Context, c *JSONCache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil || c.rdb == nil {
		return load(ctx)
	}
	full := c.prefix + key
	data, err := c.rdb.Get(ctx, full).Bytes()
	if err == nil {
		var out T
		if uErr := json.Unmarshal(data, &out); uErr == nil {
			c.hits.Add(1)
			return out, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("cache get failed", zap.String("key", full), zap.Error(err))
	}

	c.misses.Add(1)
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if payload, mErr := json.Marshal(v); mErr == nil {
		if sErr := c.rdb.Set(ctx, full, payload, c.ttl).Err(); sErr != nil {
			logger.Warn("cache set failed", zap.String("key", full), zap.Error(sErr))
		}
	}
	return v, nil
}

// Invalidate drops every key under the prefix.
func (c *JSONCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Stats reports hit and miss counts since creation.
func (c *JSONCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
