package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/booking-pulse/recommend"
	"github.com/redis/go-redis/v9"
)

/* Redis-backed heatmap snapshot cache
 * Snapshots expire on their own; a stale window simply rebuilds on the
 * next miss, so no invalidation path is needed
 */

const keyPrefix = "heatmap" // Key naming: heatmap:{scope}

// DefaultTTL keeps snapshots fresh enough for availability queries.
const DefaultTTL = 5 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a snapshot cache over an existing redis client.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached snapshot for the scope key, if present.
func (c *Cache) Get(ctx context.Context, key string) (recommend.Heatmap, bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf("%s:%s", keyPrefix, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return recommend.Heatmap{}, false, nil
		}
		return recommend.Heatmap{}, false, fmt.Errorf("getting heatmap snapshot: %w", err)
	}

	var hm recommend.Heatmap
	if err := json.Unmarshal([]byte(data), &hm); err != nil {
		return recommend.Heatmap{}, false, fmt.Errorf("unmarshaling heatmap snapshot: %w", err)
	}
	return hm, true, nil
}

// Set stores the snapshot with the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, hm recommend.Heatmap) error {
	data, err := json.Marshal(hm)
	if err != nil {
		return fmt.Errorf("marshaling heatmap snapshot: %w", err)
	}

	err = c.client.Set(ctx, fmt.Sprintf("%s:%s", keyPrefix, key), data, c.ttl).Err()
	if err != nil {
		return fmt.Errorf("setting heatmap snapshot: %w", err)
	}
	return nil
}
