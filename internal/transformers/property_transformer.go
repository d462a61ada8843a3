package transformers

import (
	"encoding/json"
	"strings"
	"time"

	"marketplace-listings/internal/models"
)

// DefaultPlaceholderImage is used when a listing has no media at all.
const DefaultPlaceholderImage = "/images/placeholder-property.jpg"

type propertyTransformer struct {
	placeholderImage string
	now              func() time.Time
}

func NewPropertyTransformer(placeholderImage string) PropertyTransformer {
	if placeholderImage == "" {
		placeholderImage = DefaultPlaceholderImage
	}
	return &propertyTransformer{
		placeholderImage: placeholderImage,
		now:              time.Now,
	}
}

// Normalize maps a raw record onto the canonical Property. It never fails:
// every malformed or missing field falls back to a documented default.
func (t *propertyTransformer) Normalize(raw models.RawProperty, lang models.Language) models.Property {
	if raw.IsNormalized() {
		if property, ok := decodeCanonical(raw); ok {
			return property
		}
	}

	property := models.Property{
		ID:           raw.Key(),
		Title:        getLocalized(raw, lang, "title", "name"),
		Description:  getLocalized(raw, lang, "description"),
		ListingType:  resolveListingType(firstValue(raw, "listing_type", "listingType")),
		PropertyType: getLocalized(raw, lang, "property_type", "propertyType", "type"),
		Address:      getLocalized(raw, lang, "address", "location.address"),
		City:         getLocalized(raw, lang, "city", "location.city"),
		State:        getLocalized(raw, lang, "state", "governorate", "location.state"),
		CreatedAt:    resolveTimestamp(firstValue(raw, "created_at", "createdAt")),
		Normalized:   true,
	}

	var currency string
	property.Price, currency = resolvePrice(firstValue(raw, "price"))
	if currency == "" {
		currency = getString(raw, "currency")
	}
	property.Currency = currency

	property.Bedrooms = getInt(raw, "bedrooms", "details.bedrooms")
	property.Bathrooms = getInt(raw, "bathrooms", "details.bathrooms")
	property.SquareFootage = getFloat(raw,
		"square_feet", "squareFeet", "square_footage", "squareFootage", "area",
		"details.square_feet", "details.squareFeet", "details.area")
	property.YearBuilt = getInt(raw, "year_built", "yearBuilt", "details.year_built", "details.yearBuilt")
	if property.YearBuilt <= 0 {
		property.YearBuilt = t.now().Year()
	}

	property.FloorNumber = getOptionalInt(raw, "floor_number", "floorNumber", "details.floor_number", "details.floorNumber")
	property.TotalFloors = getOptionalInt(raw, "total_floors", "totalFloors", "details.total_floors", "details.totalFloors")
	property.BalconyCount = getOptionalInt(raw, "balcony_count", "balconyCount", "balconies", "details.balcony_count", "details.balconyCount")
	property.Orientation = getString(raw, "orientation", "details.orientation")
	property.ViewType = getString(raw, "view_type", "viewType", "details.view_type", "details.viewType")

	property.MainImage, property.Images = resolveImages(raw, t.placeholderImage)

	return property
}

// NormalizeAll normalizes every record into a new slice.
func (t *propertyTransformer) NormalizeAll(raws []models.RawProperty, lang models.Language) []models.Property {
	properties := make([]models.Property, 0, len(raws))
	for _, raw := range raws {
		properties = append(properties, t.Normalize(raw, lang))
	}
	return properties
}

func decodeCanonical(raw models.RawProperty) (models.Property, bool) {
	data, err := json.Marshal(raw)
	if err != nil {
		return models.Property{}, false
	}
	var property models.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return models.Property{}, false
	}
	if property.Images == nil {
		property.Images = []string{}
	}
	return property, true
}

func resolveListingType(v interface{}) models.ListingType {
	s, _ := v.(string)
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "rent"):
		return models.ListingRent
	default:
		return models.ListingSale
	}
}

func resolveTimestamp(v interface{}) string {
	switch ts := v.(type) {
	case string:
		return strings.TrimSpace(ts)
	case nil:
		return ""
	}
	if secs, ok := toFloat(v); ok && secs > 0 {
		return time.Unix(int64(secs), 0).UTC().Format(time.RFC3339)
	}
	return ""
}
