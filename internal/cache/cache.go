package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client for catalog read caching. Redis is an
// optional accelerator here, so every method fails safe: connectivity
// errors degrade to cache misses instead of surfacing to callers.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// GetJSON loads a key and unmarshals it into dest. It reports false on a
// miss, an unreachable server, or a payload that no longer unmarshals
// (stale schema); dest is untouched in those cases.
func (c *Client) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors alike count as misses
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		_ = c.client.Del(ctx, key).Err()
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with a TTL. Marshal and
// redis errors are swallowed; a value that cannot be cached is simply
// served from the database next time.
func (c *Client) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, ttl).Err()
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}
