package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// IdempotencyRepository remembers the response of a keyed request for a while.
type IdempotencyRepository struct {
	cache *cache.Cache
}

func NewIdempotencyRepository(ttl time.Duration) *IdempotencyRepository {
	return &IdempotencyRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *IdempotencyRepository) Save(scope, key string, value interface{}) {
	r.cache.Set(scope+":"+key, value, cache.DefaultExpiration)
}

func (r *IdempotencyRepository) Get(scope, key string) (interface{}, bool) {
	return r.cache.Get(scope + ":" + key)
}
