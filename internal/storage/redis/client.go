package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"escolta/internal/config"
)

const dialTimeout = 5 * time.Second

// Client wraps the go-redis client used for refresh- and reset-token
// storage. Connectivity is verified at construction, a missing redis at
// startup is a deployment error rather than something to limp through.
type Client struct {
	*redis.Client
}

func NewClient(cfg config.RedisConf) (*Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	return &Client{Client: c}, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Stop() error {
	return c.Client.Close()
}
