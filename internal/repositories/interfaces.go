package repositories

import (
	"context"
	"time"

	"marketplace-listings/internal/models"
)

// PropertyRepository persists the last good upstream collection so listings
// can still be served while the upstream API is down.
type PropertyRepository interface {
	SaveSnapshot(ctx context.Context, properties []models.RawProperty) error
	FindAll(ctx context.Context) ([]models.RawProperty, error)
	FindByID(ctx context.Context, id string) (models.RawProperty, error)
}

// PropertyCache holds raw upstream records. Found is false on a miss.
type PropertyCache interface {
	GetListings(ctx context.Context) (properties []models.RawProperty, found bool, err error)
	SetListings(ctx context.Context, properties []models.RawProperty, expiration time.Duration) error
	GetProperty(ctx context.Context, id string) (property models.RawProperty, found bool, err error)
	SetProperty(ctx context.Context, id string, property models.RawProperty, expiration time.Duration) error
	Invalidate(ctx context.Context) error
}

// ListingSource is the upstream listings API.
type ListingSource interface {
	FetchProperties(ctx context.Context) ([]map[string]interface{}, error)
	FetchProperty(ctx context.Context, id string) (map[string]interface{}, error)
}
