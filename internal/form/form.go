// Package form holds the property draft under edit and the rules for changing it.
//
// SetField and ToggleAmenity are pure: they return a new draft and never modify their input.
package form

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/models"
	"spacia-portal/internal/validators"
)

// Field names accepted by SetField. They match the wire names.
const (
	FieldName          = "name"
	FieldAddress       = "address"
	FieldEircode       = "eircode"
	FieldDescription   = "description"
	FieldPostalCode    = "postalCode"
	FieldRent          = "rent"
	FieldDeposit       = "deposit"
	FieldArea          = "area"
	FieldAvailableFrom = "availableFrom"
	FieldEnergyRatings = "energyRatings"
	FieldBedrooms      = "bedrooms"
	FieldBathrooms     = "bathrooms"
	FieldPropertyType  = "propertyType"
)

// SetField applies a single field edit. Numeric fields parse as float and fall back to 0;
// bedrooms and bathrooms are truncated to integers. A description longer than the limit,
// the list fields and unknown names leave the draft unchanged.
func SetField(draft models.PropertyDraft, name, raw string) models.PropertyDraft {
	out := draft.Clone()
	switch name {
	case FieldName:
		out.Name = raw
	case FieldAddress:
		out.Address = raw
	case FieldEircode:
		out.Eircode = raw
	case FieldDescription:
		if utf8.RuneCountInString(raw) > models.DescriptionMaxLength {
			return out
		}
		out.Description = raw
	case FieldPostalCode:
		out.PostalCode = raw
	case FieldAvailableFrom:
		out.AvailableFrom = raw
	case FieldEnergyRatings:
		out.EnergyRatings = raw
	case FieldPropertyType:
		out.PropertyType = raw
	case FieldRent:
		out.Rent = parseNumber(raw)
	case FieldDeposit:
		out.Deposit = parseNumber(raw)
	case FieldArea:
		out.Area = parseNumber(raw)
	case FieldBedrooms:
		out.Bedrooms = int(parseNumber(raw))
	case FieldBathrooms:
		out.Bathrooms = int(parseNumber(raw))
	}
	return out
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ToggleAmenity adds the amenity when absent and removes it when present.
func ToggleAmenity(draft models.PropertyDraft, amenity string) models.PropertyDraft {
	out := draft.Clone()
	kept := make([]string, 0, len(out.Amenities)+1)
	found := false
	for _, a := range out.Amenities {
		if a == amenity {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		kept = append(kept, amenity)
	}
	out.Amenities = kept
	return out
}

// Model is a draft bound to the master data and mode of the view editing it.
type Model struct {
	draft     models.PropertyDraft
	master    models.MasterData
	isNew     bool
	validator validators.PropertyValidator
	now       func() time.Time
}

// NewAddModel starts an empty draft for creating a property.
func NewAddModel(master models.MasterData) *Model {
	return &Model{
		draft:     models.PropertyDraft{Amenities: []string{}, Images: []string{}},
		master:    master,
		isNew:     true,
		validator: validators.NewPropertyValidator(),
		now:       time.Now,
	}
}

// NewUpdateModel starts from an existing record's draft.
func NewUpdateModel(master models.MasterData, draft models.PropertyDraft) *Model {
	return &Model{
		draft:     draft.Clone(),
		master:    master,
		validator: validators.NewPropertyValidator(),
		now:       time.Now,
	}
}

// Draft returns a copy of the current draft.
func (m *Model) Draft() models.PropertyDraft { return m.draft.Clone() }

func (m *Model) Master() models.MasterData { return m.master }

func (m *Model) IsNew() bool { return m.isNew }

func (m *Model) SetField(name, raw string) *Model {
	m.draft = SetField(m.draft, name, raw)
	return m
}

func (m *Model) ToggleAmenity(amenity string) *Model {
	m.draft = ToggleAmenity(m.draft, amenity)
	return m
}

// Replace swaps in a whole draft, e.g. one decoded from a request body.
func (m *Model) Replace(draft models.PropertyDraft) *Model {
	m.draft = draft.Clone()
	return m
}

// Validate returns a ValidationError with field-scoped messages, or nil.
func (m *Model) Validate() error {
	fields := m.validator.Validate(m.draft, validators.PropertyRules{
		Master: m.master,
		IsNew:  m.isNew,
		Today:  m.now(),
	})
	if len(fields) == 0 {
		return nil
	}
	return apperrors.NewValidationError(fields)
}

// IsValid reports whether the draft may be submitted.
func (m *Model) IsValid() bool {
	return m.Validate() == nil
}
