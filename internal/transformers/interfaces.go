package transformers

import (
	"marketplace-listings/internal/models"
)

type PropertyTransformer interface {
	Normalize(raw models.RawProperty, lang models.Language) models.Property
	NormalizeAll(raws []models.RawProperty, lang models.Language) []models.Property
}
