package kvstore

import (
	"context"
	"time"

	"github.com/Amund211/bosslevels/internal/adapters/cache"
)

type lookup struct {
	value string
	found bool
}

type cached struct {
	store Store
	cache cache.Cache[lookup]
}

// NewCached puts a read-through ttl cache in front of store. Writes go through to store first.
func NewCached(store Store, ttl time.Duration) *cached {
	return &cached{
		store: store,
		cache: cache.NewTTLCache[lookup](ttl),
	}
}

func (c *cached) Get(ctx context.Context, key string) (string, bool, error) {
	result, _, err := cache.GetOrCreate(ctx, c.cache, key, func() (lookup, error) {
		value, found, err := c.store.Get(ctx, key)
		if err != nil {
			return lookup{}, err
		}
		return lookup{value: value, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	return result.value, result.found, nil
}

func (c *cached) Set(ctx context.Context, key, value string) error {
	err := c.store.Set(ctx, key, value)
	if err != nil {
		// The stored value is unknown after a failed write
		cache.Delete(c.cache, key)
		return err
	}

	cache.Set(c.cache, key, lookup{value: value, found: true})
	return nil
}
