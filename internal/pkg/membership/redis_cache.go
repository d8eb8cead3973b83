package membership

import (
	"time"

	"github.com/sintechbr/sst/internal/pkg/cache"
)

// redisCache adapts the shared Redis client to the resolver Cache
// interface.
type redisCache struct{}

// NewRedisCache returns a Cache backed by the application Redis client.
func NewRedisCache() Cache {
	return redisCache{}
}

func (redisCache) Get(key string) (string, error) {
	return cache.Get(key)
}

func (redisCache) Set(key string, value string, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}
