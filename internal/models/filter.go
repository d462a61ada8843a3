package models

// Language is a supported UI language.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	LangKurdish Language = "ku"
)

// SortKey selects the field results are ordered by.
type SortKey string

const (
	SortByPrice         SortKey = "price"
	SortByDate          SortKey = "date"
	SortBySquareFootage SortKey = "squareFootage"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterSpec is a declarative set of optional constraints plus sort
// instructions. A nil or empty field imposes no constraint.
type FilterSpec struct {
	Search       string `form:"search" json:"search,omitempty"`
	PropertyType string `form:"propertyType" json:"propertyType,omitempty"`
	ListingType  string `form:"listingType" json:"listingType,omitempty" validate:"omitempty,oneof=rent sale"`

	MinPrice *float64 `form:"minPrice" json:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" json:"maxPrice,omitempty" validate:"omitempty,gte=0"`

	MinBedrooms  *int `form:"minBedrooms" json:"minBedrooms,omitempty" validate:"omitempty,gte=0"`
	MinBathrooms *int `form:"minBathrooms" json:"minBathrooms,omitempty" validate:"omitempty,gte=0"`

	MinSquareFootage *float64 `form:"minSquareFootage" json:"minSquareFootage,omitempty" validate:"omitempty,gte=0"`
	MaxSquareFootage *float64 `form:"maxSquareFootage" json:"maxSquareFootage,omitempty" validate:"omitempty,gte=0"`

	MinFloor       *int `form:"minFloor" json:"minFloor,omitempty"`
	MaxFloor       *int `form:"maxFloor" json:"maxFloor,omitempty"`
	MinTotalFloors *int `form:"minTotalFloors" json:"minTotalFloors,omitempty" validate:"omitempty,gte=0"`
	MaxTotalFloors *int `form:"maxTotalFloors" json:"maxTotalFloors,omitempty" validate:"omitempty,gte=0"`
	MinBalconies   *int `form:"minBalconies" json:"minBalconies,omitempty" validate:"omitempty,gte=0"`
	MaxBalconies   *int `form:"maxBalconies" json:"maxBalconies,omitempty" validate:"omitempty,gte=0"`

	Orientation string `form:"orientation" json:"orientation,omitempty"`
	ViewType    string `form:"viewType" json:"viewType,omitempty"`

	SortBy    SortKey   `form:"sortBy" json:"sortBy,omitempty" validate:"omitempty,oneof=price date squareFootage"`
	SortOrder SortOrder `form:"sortOrder" json:"sortOrder,omitempty" validate:"omitempty,oneof=asc desc"`
	Page      int       `form:"page" json:"page,omitempty" validate:"omitempty,gte=1"`
}

// SearchRequest is the body of a stateless search over a caller-supplied collection.
type SearchRequest struct {
	Properties []RawProperty `json:"properties"`
	Filters    FilterSpec    `json:"filters"`
	Lang       string        `json:"lang,omitempty"`
}

// NormalizeRequest is the body of a normalize-only call.
type NormalizeRequest struct {
	Properties []RawProperty `json:"properties"`
	Lang       string        `json:"lang,omitempty"`
}
