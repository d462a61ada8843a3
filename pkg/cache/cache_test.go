package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "listings:raw:all", ListingsKey())
	assert.Equal(t, "listings:raw:property:42", PropertyKey("42"))
	assert.Equal(t, "listings:keys", TrackedKeysSetKey())
}

func TestCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.SetTracked(ctx, "k", []byte("v"), 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	got[0] = 'x'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("v"), again, "callers receive a copy")

	require.NoError(t, c.InvalidateTracked(ctx))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Ping(ctx))
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetTracked(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, c.SetTracked(ctx, "forever", []byte("2"), 0))
	assert.Equal(t, 2, c.Len())

	now = now.Add(2 * time.Minute)
	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "forever")
	assert.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SetTrackedAndGet(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.SetTracked(ctx, PropertyKey("1"), []byte(`{"id":1}`), time.Minute))

	got, err := store.Get(ctx, PropertyKey("1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(got))

	members, err := mr.Members(TrackedKeysSetKey())
	require.NoError(t, err)
	assert.Equal(t, []string{PropertyKey("1")}, members)
	assert.Equal(t, time.Minute, mr.TTL(PropertyKey("1")))

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, PropertyKey("1"))
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisStore_InvalidateTracked(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.SetTracked(ctx, ListingsKey(), []byte(`[]`), 0))
	require.NoError(t, store.SetTracked(ctx, PropertyKey("a"), []byte(`{}`), 0))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, store.InvalidateTracked(ctx))

	assert.False(t, mr.Exists(ListingsKey()))
	assert.False(t, mr.Exists(PropertyKey("a")))
	assert.False(t, mr.Exists(TrackedKeysSetKey()))
	assert.True(t, mr.Exists("unrelated"))

	// Invalidating an empty set is not an error.
	assert.NoError(t, store.InvalidateTracked(ctx))
}

func TestRedisStore_ConnectionErrors(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)
	require.NoError(t, store.Ping(ctx))

	mr.Close()

	_, err := store.Get(ctx, "k")
	var cacheErr *CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, "get", cacheErr.Operation)
	assert.NotErrorIs(t, err, ErrCacheMiss)

	assert.Error(t, store.SetTracked(ctx, "k", []byte("v"), 0))
	assert.Error(t, store.Ping(ctx))
}
