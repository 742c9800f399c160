package transformers

import (
	"spacia-portal/internal/models"
)

type PropertyTransformer interface {
	NormalizeDraft(draft models.PropertyDraft) models.PropertyDraft
	DraftFromProperty(property *models.Property) models.PropertyDraft
}

type AddressTransformer interface {
	NormalizeEircode(input string) string
	NormalizeAddress(input string) string
}
