package port

import (
	"context"
	"time"
)

// RunLockPort - блокировка от параллельных запусков публикации
type RunLockPort interface {
	// Acquire возвращает domain.ErrRunLockBusy, если блокировка уже занята
	Acquire(ctx context.Context, key string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
