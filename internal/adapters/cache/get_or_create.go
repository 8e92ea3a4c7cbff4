package cache

import (
	"context"
	"fmt"

	"github.com/Amund211/bosslevels/internal/logging"
)

// GetOrCreate returns the cached data for key, calling create on a miss.
// Concurrent callers for the same key wait for the first one instead of calling create themselves.
// Returns data, created, error
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, bool, error) {
	logger := logging.FromContext(ctx)

	for {
		result := cache.getOrClaim(key)

		switch {
		case result.claimed:
			logger.DebugContext(ctx, "Cache lookup", "key", key, "cache", "miss")
			return createClaimed(cache, key, create)
		case result.valid:
			logger.DebugContext(ctx, "Cache lookup", "key", key, "cache", "hit")
			return result.data, false, nil
		}

		if err := ctx.Err(); err != nil {
			var empty T
			return empty, false, fmt.Errorf("gave up waiting for cache entry: %w", err)
		}

		logger.DebugContext(ctx, "Waiting for cache", "key", key)
		cache.wait()
	}
}

// createClaimed fills a claimed entry. The claim is released on failure, or if create panics,
// so other callers can retry.
func createClaimed[T any](cache Cache[T], key string, create func() (T, error)) (T, bool, error) {
	set := false
	defer func() {
		if !set {
			cache.delete(key)
		}
	}()

	data, err := create()
	if err != nil {
		var empty T
		return empty, false, fmt.Errorf("failed to create cache entry: %w", err)
	}

	cache.set(key, data)
	set = true
	return data, true, nil
}
