package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds what this service needs from Redis: an address, a logical DB
// for the rate-limit counters, and how long the startup ping may take.
type Config struct {
	Addr        string
	DB          int
	PingTimeout time.Duration
}

// Connect opens a client against cfg.Addr and fails fast when the server does
// not answer a ping within cfg.PingTimeout (5s when unset). Callers own the
// returned client and close it on shutdown.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
