// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockCount(service *Service) int {
	service.lockMu.Lock()
	defer service.lockMu.Unlock()
	return len(service.feedLocks)
}

/*
TestLockFeed_EvictsIdleEntries verifies the per-feed lock map holds entries
only while a sync is in flight, so a long-lived process does not accumulate
one mutex per feed id ever synced.
*/
func TestLockFeed_EvictsIdleEntries(t *testing.T) {
	service := NewService(nil, nil, nil)

	unlockFirst := service.lockFeed(100)
	unlockSecond := service.lockFeed(200)
	require.Equal(t, 2, lockCount(service))

	unlockFirst()
	assert.Equal(t, 1, lockCount(service))

	unlockSecond()
	assert.Equal(t, 0, lockCount(service))
}

/*
TestLockFeed_WaiterKeepsEntryAlive verifies eviction waits for the last
holder: a goroutine blocked on the same feed id still reaches the shared
lock, and the entry disappears only after it releases too.
*/
func TestLockFeed_WaiterKeepsEntryAlive(t *testing.T) {
	service := NewService(nil, nil, nil)

	unlock := service.lockFeed(42)

	entered := make(chan struct{})
	released := make(chan struct{})
	go func() {
		waiterUnlock := service.lockFeed(42)
		close(entered)
		waiterUnlock()
		close(released)
	}()

	// The waiter registers as a holder before blocking, so the first
	// release must not evict the entry out from under it.
	unlock()
	<-entered
	<-released

	assert.Equal(t, 0, lockCount(service))
}

/*
TestLockFeed_SerializesSameFeed verifies two syncs of one feed id never hold
the lock simultaneously.
*/
func TestLockFeed_SerializesSameFeed(t *testing.T) {
	service := NewService(nil, nil, nil)

	var inCritical int
	var maxInCritical int
	var observed sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := service.lockFeed(7)
			defer unlock()

			observed.Lock()
			inCritical++
			if inCritical > maxInCritical {
				maxInCritical = inCritical
			}
			observed.Unlock()

			observed.Lock()
			inCritical--
			observed.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInCritical)
	assert.Equal(t, 0, lockCount(service))
}
