package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connection defaults for local development. Deployments override them
// through REDIS_ADDR and REDIS_DB.
const (
	defaultAddr    = "localhost:6379"
	defaultTimeout = 5 * time.Second
)

// Config captures the settings for the Redis connection backing the session
// store. Zero values fall back to the local-development defaults.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Connect initialises a Redis client and validates connectivity with a ping.
// Session reads sit on the hot path of every guarded request, so dial, read
// and write timeouts are all bounded by the configured timeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	cfg = cfg.withDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
