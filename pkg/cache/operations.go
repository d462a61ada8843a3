package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"marketplace-listings/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisStore is a Store backed by Redis.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// retrieve the raw bytes stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Bytes()
	RecordOperationDuration("get", start)
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		IncrementError("get")
		logger.Get().Errorf("failed to get key %s: %v", key, err)
		return nil, NewCacheError("get", err, true)
	}
	return val, nil
}

// store value under key and add key to the tracking set in one round trip.
func (s *RedisStore) SetTracked(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	start := time.Now()
	ms := strconv.FormatInt(expiration.Milliseconds(), 10)
	err := setTrackedScript.Run(ctx, s.client, []string{key, TrackedKeysSetKey()}, value, ms).Err()
	RecordOperationDuration("set_tracked", start)
	if err != nil {
		IncrementError("set_tracked")
		logger.Get().Errorf("failed to execute set tracked script for key %s: %v", key, err)
		return NewCacheError("set_tracked", err, true)
	}
	return nil
}

// delete every tracked key using a Lua script.
func (s *RedisStore) InvalidateTracked(ctx context.Context) error {
	start := time.Now()
	removed, err := invalidateTrackedScript.Run(ctx, s.client, []string{TrackedKeysSetKey()}).Int64()
	RecordOperationDuration("invalidate_tracked", start)
	if err != nil {
		IncrementError("invalidate_tracked")
		logger.Get().Errorf("failed to execute invalidate script: %v", err)
		return NewCacheError("invalidate_tracked", err, false)
	}
	logger.Get().Debugf("invalidated %d cached listing keys", removed)
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.client.Ping(ctx).Err()
	RecordOperationDuration("ping", start)
	if err != nil {
		IncrementError("ping")
		return NewCacheError("ping", err, true)
	}
	return nil
}
