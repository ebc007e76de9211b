package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key does not exist or has expired.
var ErrMiss = errors.New("cache: key not found")

// Client wraps redis.Client for short-lived values such as OAuth state nonces.
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

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Set stores value with TTL.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Take returns the value and deletes the key in one round trip, so a value
// can be consumed at most once.
func (c *Client) Take(ctx context.Context, key string) ([]byte, error) {
	res, err := c.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
