package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented cache whose writes are tracked so that every
// entry can be dropped at once.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetTracked(ctx context.Context, key string, value []byte, expiration time.Duration) error
	InvalidateTracked(ctx context.Context) error
	Ping(ctx context.Context) error
}
