// Copyright (c) 2026 PodCentral. All rights reserved.

package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/podcentral/api/internal/platform/constants"
)

// RedisCounterStore implements [CounterStore] on a shared Redis instance so
// fixed-window limits hold across all API replicas.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore constructs a Redis-backed counter store.
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// Increment implements [CounterStore].
//
// The key is INCRemented and given the window TTL only when first created,
// so every hit inside one window shares a single expiry. Both commands run
// in one pipeline to keep the limiter to a single round-trip.
func (store *RedisCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	namespaced := constants.RedisPrefixRateLimit + key

	pipe := store.client.TxPipeline()
	incr := pipe.Incr(ctx, namespaced)
	pipe.ExpireNX(ctx, namespaced, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis_rate_counter_incr_failed: %w", err)
	}

	return incr.Val(), nil
}
