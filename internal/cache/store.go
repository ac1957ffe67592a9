package cache

import (
	"context"
	"time"
)

// Store is the subset of cache operations the services depend on.
type Store interface {
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	TakeJSON(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

var (
	_ Store = (*Redis)(nil)
	_ Store = (*Memory)(nil)
)
