package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache is an optional Redis-backed cache. When no Redis URL is
// configured it stays disabled and every operation is a no-op, so
// callers never need to special-case its absence.
type Cache struct {
	client  *redis.Client
	enabled bool
}

// New connects to Redis if a URL is provided; connection failures
// disable caching rather than failing startup.
func New(redisURL string) *Cache {
	c := &Cache{}

	if redisURL == "" {
		logrus.Info("Redis URL not provided, caching disabled")
		return c
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logrus.Warnf("Failed to parse Redis URL: %v, caching disabled", err)
		return c
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Warnf("Failed to connect to Redis: %v, caching disabled", err)
		return c
	}

	c.client = client
	c.enabled = true
	logrus.Info("Redis cache initialized successfully")
	return c
}

func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

func (c *Cache) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
	}
}

// Set stores a JSON-encoded value with an expiration.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, expiration).Err()
}

// Get decodes a cached value into dest. Returns redis.Nil on a miss or
// when the cache is disabled.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.Enabled() {
		return redis.Nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}
