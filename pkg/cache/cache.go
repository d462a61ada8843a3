package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is an in-process Store used when Redis is disabled.
type Cache struct {
	store map[string]entry
	mu    sync.RWMutex
	now   func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		store: make(map[string]entry),
		now:   time.Now,
	}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()
	if !ok || c.expired(e) {
		return nil, ErrCacheMiss
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// every key in the map is tracked, so SetTracked is a plain set.
func (c *Cache) SetTracked(_ context.Context, key string, value []byte, expiration time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if expiration > 0 {
		e.expiresAt = c.now().Add(expiration)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = e
	c.evictExpiredLocked()
	return nil
}

func (c *Cache) InvalidateTracked(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]entry)
	return nil
}

func (c *Cache) Ping(context.Context) error {
	return nil
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.store {
		if !c.expired(e) {
			n++
		}
	}
	return n
}

func (c *Cache) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

func (c *Cache) evictExpiredLocked() {
	for k, e := range c.store {
		if c.expired(e) {
			delete(c.store, k)
		}
	}
}
