// Package cache defines the response cache consulted by the gateway. Cell
// answers are pure functions of the identifier, so entries never go stale;
// TTLs only bound memory, not correctness.
package cache

import (
	"context"
	"time"
)

type Interface interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}
