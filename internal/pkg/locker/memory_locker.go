package locker

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLocker is the single instance fallback when Redis is not reachable.
type MemoryLocker struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{cache: cache.New(time.Minute, time.Minute)}
}

func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (ReleaseFunc, error) {
	token := newToken()
	if err := l.cache.Add(key, token, ttl); err != nil {
		return nil, ErrLockBusy
	}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if current, found := l.cache.Get(key); found && current == token {
			l.cache.Delete(key)
		}
		return nil
	}, nil
}
