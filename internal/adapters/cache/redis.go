// Package cache provides an optional Redis-backed cache for assembled
// statistics payloads.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 15 * time.Minute

// ErrMiss indicates the requested payload is not cached.
var ErrMiss = errors.New("cache miss")

// Client caches serialized statistics payloads keyed by game slug.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to the Redis instance described by url (redis://...).
// A non-positive ttl falls back to the default.
func New(ctx context.Context, url string, ttl time.Duration) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Key returns the cache key for a game's statistics payload.
func Key(game string) string {
	return "stats:" + game
}

// SetResult stores a serialized statistics payload for a game.
func (c *Client) SetResult(ctx context.Context, game string, payload []byte) error {
	if err := c.rdb.Set(ctx, Key(game), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", game, err)
	}
	return nil
}

// GetResult fetches a previously cached payload. Returns ErrMiss when the
// key is absent or expired.
func (c *Client) GetResult(ctx context.Context, game string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, Key(game)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", game, err)
	}
	return payload, nil
}

// Health verifies the Redis connection.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
