// Package locker provides short lived mutual exclusion keyed by string.
package locker

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

var ErrLockBusy = errors.New("lock is held by another request")

// ReleaseFunc gives the lock back. Releasing an expired or stolen lock is a no-op.
type ReleaseFunc func(ctx context.Context) error

type Locker interface {
	// Acquire fails fast with ErrLockBusy instead of waiting.
	Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error)
}

func newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
