// Package tiered layers an in-process LRU in front of Redis. The LRU absorbs
// repeat lookups of hot cells; Redis shares entries across replicas. Either
// tier may be absent.
package tiered

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mohammed-shakir/h3-cell-gateway/internal/cache"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/cache/redisstore"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/observability"
)

type entry struct {
	val []byte
	exp time.Time
}

type Cache struct {
	mem       *lru.Cache[string, entry]
	redis     *redisstore.Client
	opTimeout time.Duration
	now       func() time.Time
}

var _ cache.Interface = (*Cache)(nil)

// New builds a tiered cache. redis may be nil for a memory-only cache;
// lruSize <= 0 disables the memory tier.
func New(lruSize int, redis *redisstore.Client, opTimeout time.Duration) (*Cache, error) {
	c := &Cache{redis: redis, opTimeout: opTimeout, now: time.Now}
	if lruSize > 0 {
		mem, err := lru.New[string, entry](lruSize)
		if err != nil {
			return nil, err
		}
		c.mem = mem
	}
	return c, nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.mem != nil {
		if e, ok := c.mem.Get(key); ok {
			if e.exp.IsZero() || c.now().Before(e.exp) {
				observability.IncCacheHit("memory")
				return e.val, true, nil
			}
			c.mem.Remove(key)
		}
		observability.IncCacheMiss("memory")
	}

	if c.redis == nil {
		return nil, false, nil
	}

	rctx := ctx
	if c.opTimeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, c.opTimeout)
		defer cancel()
	}
	val, found, err := c.redis.Get(rctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		observability.IncCacheMiss("redis")
		return nil, false, nil
	}
	observability.IncCacheHit("redis")
	if c.mem != nil {
		// refill the front tier; expiry tracking stays redis-owned
		c.mem.Add(key, entry{val: val})
	}
	return val, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if c.mem != nil {
		e := entry{val: val}
		if ttl > 0 {
			e.exp = c.now().Add(ttl)
		}
		c.mem.Add(key, e)
	}
	if c.redis == nil {
		return nil
	}
	rctx := ctx
	if c.opTimeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, c.opTimeout)
		defer cancel()
	}
	return c.redis.Set(rctx, key, val, ttl)
}
