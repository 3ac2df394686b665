// Package cache holds the Redis-backed once-guard used to deduplicate
// gateway webhook deliveries across processes.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// OnceGuard admits a key exactly once within its TTL. Forget releases
// a key whose admission did not lead to a completed settlement.
type OnceGuard interface {
	First(key string, ttl time.Duration) bool
	Forget(key string)
}

type RedisGuard struct {
	Client *redis.Client
}

// First is SET NX under the hood. On a Redis error it admits the key:
// the SQL-side conditional settle remains the authoritative check, the
// guard only shortcuts obvious duplicates.
func (g RedisGuard) First(key string, ttl time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := g.Client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Forget releases a key consumed by First so a legitimate retry can
// pass. Best effort; on error the key ages out with its TTL.
func (g RedisGuard) Forget(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	g.Client.Del(ctx, key)
}

// NopGuard admits everything; used when Redis is not configured.
type NopGuard struct{}

func (NopGuard) First(string, time.Duration) bool { return true }

func (NopGuard) Forget(string) {}
