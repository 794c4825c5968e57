package redis

import (
	"context"
	"fmt"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"ai-receptionist/config"
)

var (
	client *goredis.Client
	mu     sync.Mutex
)

// Connect opens the shared Redis client described by cfg and verifies it with PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		return client, nil
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid url: %w", err)
	}

	c := goredis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	client = c
	return client, nil
}

// Disconnect closes the shared client, if any.
func Disconnect() {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		_ = client.Close()
		client = nil
	}
}
