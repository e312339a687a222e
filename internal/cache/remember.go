package cache

import (
	"context"
	"time"
)

// RememberJSON returns the cached value under key, loading and caching it on a
// miss. Cache failures degrade to a direct load; a failed Set is not an error
// for the caller.
func RememberJSON[T any](ctx context.Context, key string, ttl time.Duration, loader func() (T, error)) (T, error) {
	var cached T
	hit, err := GetJSON(ctx, key, &cached)
	if err == nil && hit {
		return cached, nil
	}

	value, err := loader()
	if err != nil {
		return value, err
	}
	_ = SetJSON(ctx, key, value, ttl)
	return value, nil
}
