// Package selection stores keyword selection counters in a Redis hash.
package selection

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counters keeps one hash field per normalized candidate key.
type Counters struct {
	client  redis.Cmdable
	key     string
	timeout time.Duration
}

// New creates Counters stored under the hash key. A non-positive timeout
// leaves the caller's deadline in charge.
func New(client redis.Cmdable, key string, timeout time.Duration) *Counters {
	return &Counters{client: client, key: key, timeout: timeout}
}

// Counts returns the stored counts of keys. Keys never selected are absent
// from the result.
func (c *Counters) Counts(ctx context.Context, keys []string) (map[string]int64, error) {
	out := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	vals, err := c.client.HMGet(ctx, c.key, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("hmget %s: %w", c.key, err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse count of %q: %w", keys[i], err)
		}
		out[keys[i]] = n
	}
	return out, nil
}

// Increment atomically adds one to the count of key.
func (c *Counters) Increment(ctx context.Context, key string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.client.HIncrBy(ctx, c.key, key, 1).Err(); err != nil {
		return fmt.Errorf("hincrby %s %q: %w", c.key, key, err)
	}
	return nil
}

func (c *Counters) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
