package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"marketplace-listings/internal/models"
	"marketplace-listings/pkg/cache"
)

type propertyCache struct {
	store cache.Store
}

// NewPropertyCache wraps a Redis or in-memory store.
func NewPropertyCache(store cache.Store) PropertyCache {
	return &propertyCache{store: store}
}

func (c *propertyCache) GetListings(ctx context.Context) ([]models.RawProperty, bool, error) {
	data, err := c.store.Get(ctx, cache.ListingsKey())
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	properties, err := models.DecodeRawProperties(data)
	if err != nil {
		return nil, false, cache.NewCacheError("unmarshal", err, true)
	}
	return properties, true, nil
}

func (c *propertyCache) SetListings(ctx context.Context, properties []models.RawProperty, expiration time.Duration) error {
	if properties == nil {
		properties = []models.RawProperty{}
	}
	data, err := json.Marshal(properties)
	if err != nil {
		return cache.NewCacheError("marshal", err, false)
	}
	return c.store.SetTracked(ctx, cache.ListingsKey(), data, expiration)
}

func (c *propertyCache) GetProperty(ctx context.Context, id string) (models.RawProperty, bool, error) {
	data, err := c.store.Get(ctx, cache.PropertyKey(id))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	property, err := models.DecodeRawProperty(data)
	if err != nil {
		return nil, false, cache.NewCacheError("unmarshal", err, true)
	}
	return property, true, nil
}

func (c *propertyCache) SetProperty(ctx context.Context, id string, property models.RawProperty, expiration time.Duration) error {
	data, err := json.Marshal(property)
	if err != nil {
		return cache.NewCacheError("marshal", err, false)
	}
	return c.store.SetTracked(ctx, cache.PropertyKey(id), data, expiration)
}

func (c *propertyCache) Invalidate(ctx context.Context) error {
	return c.store.InvalidateTracked(ctx)
}
