// internal/models/property.go
package models

import (
	"encoding/json"
)

// ListingType is the transaction kind of a listing.
type ListingType string

const (
	ListingRent ListingType = "rent"
	ListingSale ListingType = "sale"
)

// NormalizedMarker is the field name that flags a record as already canonical.
const NormalizedMarker = "_normalized"

// Property is the canonical, shape-stable view of a listing.
// A nil Price means "price on request".
type Property struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Price         *float64    `json:"price"`
	Currency      string      `json:"currency,omitempty"`
	ListingType   ListingType `json:"listingType"`
	PropertyType  string      `json:"propertyType"`
	Bedrooms      int         `json:"bedrooms"`
	Bathrooms     int         `json:"bathrooms"`
	SquareFootage float64     `json:"squareFootage"`
	YearBuilt     int         `json:"yearBuilt"`
	FloorNumber   *int        `json:"floorNumber,omitempty"`
	TotalFloors   *int        `json:"totalFloors,omitempty"`
	BalconyCount  *int        `json:"balconyCount,omitempty"`
	Orientation   string      `json:"orientation,omitempty"`
	ViewType      string      `json:"viewType,omitempty"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	MainImage     string      `json:"mainImage"`
	Images        []string    `json:"images"`
	CreatedAt     string      `json:"createdAt"`
	Normalized    bool        `json:"_normalized"`
}

// PriceOnRequest reports whether the listing has no usable price.
func (p Property) PriceOnRequest() bool {
	return p.Price == nil
}

// PriceValue returns the price or 0 when it is on request.
func (p Property) PriceValue() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Raw converts the property back into a raw record that still carries the
// normalized marker, so feeding it to the normalizer again is a no-op.
func (p Property) Raw() RawProperty {
	p.Normalized = true
	data, err := json.Marshal(p)
	if err != nil {
		return RawProperty{NormalizedMarker: true}
	}
	raw := RawProperty{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawProperty{NormalizedMarker: true}
	}
	return raw
}

type PaginationMeta struct {
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PerPage  int     `json:"perPage"`
	LastPage int     `json:"lastPage"`
	Next     *string `json:"next,omitempty"`
	Prev     *string `json:"prev,omitempty"`
}

type PaginatedPropertiesResponse struct {
	Data []Property     `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
