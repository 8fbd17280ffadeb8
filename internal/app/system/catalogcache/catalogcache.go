// Package catalogcache caches small, read-mostly snapshots such as the
// catalog summary injected into the chat system prompt. It uses Redis when
// an address is configured and an in-process TTL map otherwise.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "stratatrips:catalog:"

// Keys for the snapshots the chat prompt reads. Admin writes to the
// matching collection invalidate them.
const (
	KeyPackages     = "packages"
	KeyDestinations = "destinations"
)

// Cache stores JSON-encoded values with a fixed TTL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger

	mu  sync.Mutex
	mem map[string]memEntry
	now func() time.Time
}

type memEntry struct {
	data    []byte
	expires time.Time
}

// NewMemory returns a Cache backed by an in-process map.
func NewMemory(ttl time.Duration, log *zap.Logger) *Cache {
	return &Cache{
		ttl: ttl,
		log: log,
		mem: make(map[string]memEntry),
		now: time.Now,
	}
}

// NewRedis returns a Cache backed by rdb.
func NewRedis(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	c := NewMemory(ttl, log)
	c.rdb = rdb
	return c
}

// Backend names the storage in use, for startup logging.
func (c *Cache) Backend() string {
	if c.rdb != nil {
		return "redis"
	}
	return "memory"
}

// Get copies the cached value for key into v. It reports false on a miss.
func (c *Cache) Get(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := c.getRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores v under key for the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if c.rdb != nil {
		return c.rdb.Set(ctx, keyPrefix+key, data, c.ttl).Err()
	}
	c.mu.Lock()
	c.mem[key] = memEntry{data: data, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate drops key. Admin writes to the catalog call this so the next
// chat turn sees fresh data.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c.rdb != nil {
		full := make([]string, len(keys))
		for i, k := range keys {
			full[i] = keyPrefix + k
		}
		if err := c.rdb.Del(ctx, full...).Err(); err != nil {
			c.log.Warn("catalog cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
		}
		return
	}
	c.mu.Lock()
	for _, k := range keys {
		delete(c.mem, k)
	}
	c.mu.Unlock()
}

func (c *Cache) getRaw(ctx context.Context, key string) ([]byte, bool, error) {
	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return data, true, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.mem[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.mem, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Load returns the cached value for key, calling fn and caching its result
// on a miss. Cache errors are logged and fall through to fn, so a Redis
// outage degrades to uncached reads.
func Load[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	var v T
	if c == nil {
		return fn(ctx)
	}

	ok, err := c.Get(ctx, key, &v)
	if err != nil {
		c.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return v, nil
	}

	v, err = fn(ctx)
	if err != nil {
		return v, err
	}
	if err := c.Set(ctx, key, v); err != nil {
		c.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
