// Package listing backs the read-only property views: browse, detail, my properties and edit loading.
package listing

import (
	"strings"

	"spacia-portal/internal/models"
)

// Filter narrows a property list. Empty fields match everything.
type Filter struct {
	// Location matches postalCode case-insensitively as a substring.
	Location string `form:"location" json:"location,omitempty"`
	// PropertyType matches propertyType case-insensitively and exactly.
	PropertyType string `form:"propertyType" json:"propertyType,omitempty"`
}

func (f Filter) Matches(p models.Property) bool {
	if f.Location != "" && !strings.Contains(strings.ToLower(p.PostalCode), strings.ToLower(f.Location)) {
		return false
	}
	if f.PropertyType != "" && !strings.EqualFold(p.PropertyType, f.PropertyType) {
		return false
	}
	return true
}

// Apply returns the matching properties in their original order.
func (f Filter) Apply(properties []models.Property) []models.Property {
	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
