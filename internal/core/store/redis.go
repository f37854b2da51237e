package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/quotalens/quotalens/internal/config"
)

// redisKV implements KV on a Redis backend. Values are plain string keys, no
// TTLs; retention is handled by the sweeper, not by key expiry.
type redisKV struct {
	client *redis.Client
}

func openRedis(ctx context.Context, cfg config.StoreConfig) (KV, error) {
	var opts *redis.Options

	if dsn := strings.TrimSpace(cfg.URL); dsn != "" && strings.HasPrefix(dsn, "redis") {
		parsed, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		addr := strings.TrimSpace(cfg.Addr)
		if addr == "" {
			return nil, errors.New("store addr or redis url is required")
		}
		opts = &redis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis store: %w", err)
	}

	return &redisKV{client: client}, nil
}

func (s *redisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("fetch entry: %w", err)
	}
	return value, true, nil
}

func (s *redisKV) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("store entry: %w", err)
	}
	return nil
}

func (s *redisKV) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return keys, nil
}

func (s *redisKV) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (s *redisKV) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisKV) Close() error {
	return s.client.Close()
}
