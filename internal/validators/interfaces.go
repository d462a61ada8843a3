package validators

import (
	"marketplace-listings/internal/models"
)

type FilterValidator interface {
	ValidateFilters(spec *models.FilterSpec) error
}
