package transformers

import (
	"strings"

	"spacia-portal/internal/models"
)

type propertyTransformer struct {
	address AddressTransformer
}

func NewPropertyTransformer() PropertyTransformer {
	return &propertyTransformer{address: NewAddressTransformer()}
}

// NormalizeDraft prepares a draft for the wire: text trimmed, eircode formatted, lists non-nil.
// The description keeps its inner whitespace.
func (t *propertyTransformer) NormalizeDraft(draft models.PropertyDraft) models.PropertyDraft {
	out := draft.Clone()
	out.Name = strings.TrimSpace(out.Name)
	out.Address = t.address.NormalizeAddress(out.Address)
	out.Eircode = t.address.NormalizeEircode(out.Eircode)
	out.Description = strings.TrimSpace(out.Description)
	out.PostalCode = strings.TrimSpace(out.PostalCode)
	out.AvailableFrom = strings.TrimSpace(out.AvailableFrom)
	out.EnergyRatings = strings.TrimSpace(out.EnergyRatings)
	out.PropertyType = strings.TrimSpace(out.PropertyType)
	if out.Amenities == nil {
		out.Amenities = []string{}
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	return out
}

// DraftFromProperty extracts the editable fields of a server record.
// Timestamps the service returns with a time part are cut to the date.
func (t *propertyTransformer) DraftFromProperty(property *models.Property) models.PropertyDraft {
	if property == nil {
		return models.PropertyDraft{Amenities: []string{}, Images: []string{}}
	}
	draft := property.PropertyDraft.Clone()
	if len(draft.AvailableFrom) > len(models.DateLayout) {
		draft.AvailableFrom = draft.AvailableFrom[:len(models.DateLayout)]
	}
	if draft.Amenities == nil {
		draft.Amenities = []string{}
	}
	if draft.Images == nil {
		draft.Images = []string{}
	}
	return draft
}
