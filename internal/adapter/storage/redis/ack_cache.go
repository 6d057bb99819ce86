package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// AckCache implements ports.CallbackAckCache using Redis. It remembers
// the acknowledgement already committed for a callback code so that
// gateway redeliveries can be answered without touching postgres.
type AckCache struct {
	client *goredis.Client
	prefix string
}

// NewAckCache creates a new Redis-backed callback acknowledgement cache.
func NewAckCache(client *goredis.Client) *AckCache {
	return &AckCache{
		client: client,
		prefix: "callback_ack:",
	}
}

// Get retrieves a cached acknowledgement by callback code.
// Returns nil, nil if the key does not exist.
func (c *AckCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis ack cache get: %w", err)
	}
	return val, nil
}

// Set stores an acknowledgement with TTL.
func (c *AckCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis ack cache set: %w", err)
	}
	return nil
}
