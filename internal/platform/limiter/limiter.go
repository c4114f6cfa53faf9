// Copyright (c) 2026 PodCentral. All rights reserved.

/*
Package limiter provides injectable rate-limiting capabilities.

Two models are supported:

  - PerClient: a token-bucket limiter per client IP, used by the global
    middleware chain to shed abusive traffic.
  - CounterStore: a fixed-window counter abstraction used by endpoint-scoped
    limits (e.g. the directory sync endpoint). The store is an injected
    capability so that a multi-instance deployment can back it with Redis
    instead of process-local memory.

The in-memory implementations do not survive process restarts and are not
shared between instances. That limitation is deliberate and documented; use
the Redis-backed store where cross-instance enforcement matters.
*/
package limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// # Fixed-Window Counters

// CounterStore abstracts a fixed-window hit counter keyed by client identity.
//
// Increment records one hit against the key's current window and returns the
// total number of hits observed inside that window, including this one.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// memoryWindow tracks hits for a single key inside one fixed window.
type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryCounterStore is a process-local [CounterStore].
//
// # Concurrency
//
// Safe for concurrent use. State is per-process only.
type MemoryCounterStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

// NewMemoryCounterStore constructs an empty in-memory counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

// Increment implements [CounterStore].
func (store *MemoryCounterStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	currentTime := store.now()

	entry, found := store.windows[key]
	if !found || currentTime.After(entry.resetAt) {
		// Fresh window for this key
		store.windows[key] = &memoryWindow{count: 1, resetAt: currentTime.Add(window)}
		return 1, nil
	}

	entry.count++
	return entry.count, nil
}

// # Per-Client Token Buckets

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerClient maintains one token bucket per client key (usually an IP).
//
// A background goroutine evicts idle entries so the map cannot grow without
// bound under address churn.
type PerClient struct {
	mu      sync.Mutex
	clients map[string]*clientBucket

	rps   rate.Limit
	burst int
	ttl   time.Duration
}

// NewPerClient constructs a per-client token-bucket limiter and starts its
// cleanup loop. The loop stops when ctx is cancelled.
func NewPerClient(ctx context.Context, rps float64, burst int, ttl, cleanupEvery time.Duration) *PerClient {
	perClient := &PerClient{
		clients: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
	}

	go func() {
		ticker := time.NewTicker(cleanupEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				perClient.evictIdle()
			case <-ctx.Done():
				return
			}
		}
	}()

	return perClient
}

// Allow reports whether the client identified by key may proceed.
func (perClient *PerClient) Allow(key string) bool {
	perClient.mu.Lock()
	defer perClient.mu.Unlock()

	bucket, found := perClient.clients[key]
	if !found {
		bucket = &clientBucket{limiter: rate.NewLimiter(perClient.rps, perClient.burst)}
		perClient.clients[key] = bucket
	}

	bucket.lastSeen = time.Now()
	return bucket.limiter.Allow()
}

// evictIdle removes entries that have not been seen within the TTL.
func (perClient *PerClient) evictIdle() {
	perClient.mu.Lock()
	defer perClient.mu.Unlock()

	for key, bucket := range perClient.clients {
		if time.Since(bucket.lastSeen) > perClient.ttl {
			delete(perClient.clients, key)
		}
	}
}
