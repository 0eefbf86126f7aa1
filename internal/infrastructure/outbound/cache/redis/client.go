package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ports "pinstack-post-page/internal/domain/ports/output"
	"pinstack-post-page/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

const (
	keyNamespace   = "post_page:"
	connectTimeout = 5 * time.Second
)

// Client stores JSON values under the post page key namespace.
type Client struct {
	rdb *redis.Client
	log ports.Logger
}

func NewClient(ctx context.Context, cfg config.Redis, log ports.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Error("Failed to connect to Redis", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis",
		slog.String("address", cfg.Address),
		slog.Int("port", cfg.Port),
		slog.Int("db", cfg.DB))

	return &Client{rdb: rdb, log: log}, nil
}

func (c *Client) Get(ctx context.Context, key string, dest any) error {
	val, err := c.rdb.Get(ctx, keyNamespace+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return custom_errors.ErrCacheMiss
	case err != nil:
		c.log.Error("Redis GET failed", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		c.log.Warn("Dropping undecodable cache value", slog.String("key", key), slog.String("error", err.Error()))
		_ = c.rdb.Del(ctx, keyNamespace+key).Err()
		return custom_errors.ErrCacheMiss
	}
	return nil
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.rdb.Set(ctx, keyNamespace+key, data, ttl).Err(); err != nil {
		c.log.Error("Redis SET failed", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, keyNamespace+key).Err(); err != nil {
		c.log.Error("Redis DEL failed", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete from cache: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	c.log.Info("Redis connection closed")
	return nil
}
