package locker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLockerExclusive(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "owner-1", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "owner-1", time.Minute)
	assert.ErrorIs(t, err, ErrLockBusy)

	other, err := l.Acquire(ctx, "owner-2", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))

	again, err := l.Acquire(ctx, "owner-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestMemoryLockerExpires(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	stale, err := l.Acquire(ctx, "k", 20*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	fresh, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)

	// the expired holder must not free the new holder's lock
	require.NoError(t, stale(ctx))
	_, err = l.Acquire(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrLockBusy)

	require.NoError(t, fresh(ctx))
}

func TestMemoryLockerConcurrentAcquire(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Acquire(ctx, "same", time.Minute); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}
