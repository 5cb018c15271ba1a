package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewClient builds a Redis client from a URL of the form
// redis://[:password@]host:port[/db]. The session store is the only
// consumer, but the client is shared so connection pooling is reused
// if more callers appear.
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Ping verifies the connection. Called on startup so a misconfigured
// Redis fails the boot instead of the first login.
func Ping(ctx context.Context, c *redis.Client) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
