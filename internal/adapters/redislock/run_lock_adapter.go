package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// RunLockAdapter реализует port.RunLockPort через SET NX с TTL
type RunLockAdapter struct {
	client *redis.Client
}

func NewRunLockAdapter(redisURL string) (*RunLockAdapter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("run lock adapter: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("run lock adapter: failed to ping redis: %w", err)
	}

	return &RunLockAdapter{client: client}, nil
}

// Acquire возвращает domain.ErrRunLockBusy, если блокировку держит другой запуск
func (a *RunLockAdapter) Acquire(ctx context.Context, key string, ttl time.Duration) error {
	ok, err := a.client.SetNX(ctx, key, time.Now().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return fmt.Errorf("run lock adapter: failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return domain.ErrRunLockBusy
	}
	return nil
}

func (a *RunLockAdapter) Release(ctx context.Context, key string) error {
	if err := a.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("run lock adapter: failed to release lock %s: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (a *RunLockAdapter) Close() error {
	return a.client.Close()
}
