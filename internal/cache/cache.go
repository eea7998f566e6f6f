package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quietravel/gateway/internal/destination"
)

const defaultTTL = time.Hour

// Cache wraps a Redis client and stores destination details by slug.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 1-hour TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// NewCacheWithTTL constructs a Cache with a custom TTL. A non-positive ttl
// falls back to the default.
func NewCacheWithTTL(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// key returns the Redis key for the given slug. Slugs are case-sensitive
// upstream, so the key uses the slug as given.
func key(slug string) string {
	return "destination:" + slug
}

// Get retrieves a destination from cache.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, slug string) (*destination.Destination, error) {
	val, err := c.client.Get(ctx, key(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for slug %s: %w", slug, err)
	}

	var d destination.Destination
	if err := json.Unmarshal(val, &d); err != nil {
		return nil, fmt.Errorf("unmarshaling cached destination %s: %w", slug, err)
	}

	return &d, nil
}

// Set stores a destination in cache with the configured TTL.
func (c *Cache) Set(ctx context.Context, slug string, d *destination.Destination) error {
	if d == nil {
		return nil
	}

	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling destination %s: %w", slug, err)
	}

	if err := c.client.Set(ctx, key(slug), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for slug %s: %w", slug, err)
	}

	return nil
}

// Delete removes the cached entry for the given slug.
func (c *Cache) Delete(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, key(slug)).Err(); err != nil {
		return fmt.Errorf("cache delete for slug %s: %w", slug, err)
	}
	return nil
}

// Ping checks connectivity for the health endpoint.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

var _ destination.DetailCache = (*Cache)(nil)
