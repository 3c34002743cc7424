package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// NewRedisAdapterFromOptions dials redis and verifies the connection with a PING.
func NewRedisAdapterFromOptions(ctx context.Context, opts *redis.Options) (*RedisAdapter, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage.redis.ping_failed: %w", err)
	}
	return NewRedisAdapter(client), nil
}

func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage.redis.get_failed: %w", err)
	}
	return value, true, nil
}

func (r *RedisAdapter) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("storage.redis.put_failed: %w", err)
	}
	return nil
}

func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
