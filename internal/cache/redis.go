package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisTTL bounds how long cached schedules live server-side. Results never
// go stale — inputs hash into the key — but unbounded growth would.
const redisTTL = 24 * time.Hour

// Redis is a Cache implementation backed by a Redis server, for sharing
// results between multiple server instances.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis cache talking to the given address.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{client: client}
}

// Get returns the cached value for key, if present. Connection errors are
// treated as misses; the caller recomputes.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores value under key with a bounded TTL.
func (r *Redis) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, redisTTL).Err()
}
