package redisclient

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client caches styling-advice answers so repeated questions skip the
// multi-minute upstream call. The cache is strictly an accelerator: every
// method failure is safe to ignore.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a Redis client and verifies connectivity.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

func adviceKey(question string) string {
	sum := sha1.Sum([]byte(question))
	return "advice:" + hex.EncodeToString(sum[:])
}

// GetAdvice looks up a cached answer for a question.
func (c *Client) GetAdvice(ctx context.Context, question string) (string, bool, error) {
	answer, err := c.rdb.Get(ctx, adviceKey(question)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}

// SetAdvice stores an answer with a TTL.
func (c *Client) SetAdvice(ctx context.Context, question, answer string, ttl time.Duration) error {
	return c.rdb.Set(ctx, adviceKey(question), answer, ttl).Err()
}
