package services

import (
	"sort"
	"strings"
	"time"

	"marketplace-listings/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ApplyFilters returns the properties that satisfy every predicate present
// in spec, ordered by spec's sort key. The input slice is never modified
// and the function has no failure mode.
//
// Range predicates are permissive: a property without the compared value
// (nil pointer, or zero square footage) passes that predicate.
func ApplyFilters(properties []models.Property, spec models.FilterSpec) []models.Property {
	fold := cases.Fold()
	needle := foldText(fold, spec.Search)

	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if needle != "" && !strings.Contains(searchableText(fold, p), needle) {
			continue
		}
		if !matchesText(spec.PropertyType, p.PropertyType) ||
			!matchesText(spec.ListingType, string(p.ListingType)) ||
			!matchesText(spec.Orientation, p.Orientation) ||
			!matchesText(spec.ViewType, p.ViewType) {
			continue
		}
		if !inFloatRange(p.Price, spec.MinPrice, spec.MaxPrice) {
			continue
		}
		if !atLeast(p.Bedrooms, spec.MinBedrooms) || !atLeast(p.Bathrooms, spec.MinBathrooms) {
			continue
		}
		var area *float64
		if p.SquareFootage > 0 {
			sq := p.SquareFootage
			area = &sq
		}
		if !inFloatRange(area, spec.MinSquareFootage, spec.MaxSquareFootage) {
			continue
		}
		if !inIntRange(p.FloorNumber, spec.MinFloor, spec.MaxFloor) ||
			!inIntRange(p.TotalFloors, spec.MinTotalFloors, spec.MaxTotalFloors) ||
			!inIntRange(p.BalconyCount, spec.MinBalconies, spec.MaxBalconies) {
			continue
		}
		out = append(out, p)
	}

	sortProperties(out, spec.SortBy, spec.SortOrder)
	return out
}

func sortProperties(properties []models.Property, key models.SortKey, order models.SortOrder) {
	type keyed struct {
		property models.Property
		num      float64
		at       time.Time
	}

	var fill func(*keyed)
	var compare func(a, b keyed) int
	switch key {
	case models.SortByPrice:
		fill = func(k *keyed) { k.num = k.property.PriceValue() }
	case models.SortBySquareFootage:
		fill = func(k *keyed) { k.num = k.property.SquareFootage }
	case models.SortByDate:
		fill = func(k *keyed) { k.at = parseCreatedAt(k.property.CreatedAt) }
		compare = func(a, b keyed) int { return a.at.Compare(b.at) }
	default:
		return
	}
	if compare == nil {
		compare = func(a, b keyed) int {
			switch {
			case a.num < b.num:
				return -1
			case a.num > b.num:
				return 1
			}
			return 0
		}
	}

	items := make([]keyed, len(properties))
	for i, p := range properties {
		items[i] = keyed{property: p}
		fill(&items[i])
	}

	desc := order == models.SortDesc
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return compare(items[i], items[j]) > 0
		}
		return compare(items[i], items[j]) < 0
	})
	for i := range items {
		properties[i] = items[i].property
	}
}

// parseCreatedAt reads the timestamp formats the upstream API has used,
// falling back to the Unix epoch.
func parseCreatedAt(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range createdAtLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Unix(0, 0).UTC()
}

func searchableText(fold cases.Caser, p models.Property) string {
	return foldText(fold, strings.Join([]string{p.Title, p.Description, p.Address, p.City, p.State}, " "))
}

func foldText(fold cases.Caser, s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return fold.String(norm.NFKC.String(s))
}

func matchesText(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return strings.EqualFold(want, strings.TrimSpace(got))
}

func inFloatRange(v, min, max *float64) bool {
	if v == nil {
		return true
	}
	if min != nil && *v < *min {
		return false
	}
	if max != nil && *v > *max {
		return false
	}
	return true
}

func inIntRange(v, min, max *int) bool {
	if v == nil {
		return true
	}
	if min != nil && *v < *min {
		return false
	}
	if max != nil && *v > *max {
		return false
	}
	return true
}

func atLeast(v int, min *int) bool {
	return min == nil || v >= *min
}
