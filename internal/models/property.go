package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DescriptionMaxLength is the longest description the listing service stores.
const DescriptionMaxLength = 3000

// DateLayout is the wire format of availableFrom.
const DateLayout = "2006-01-02"

// PropertyDraft is the client-held record under edit.
type PropertyDraft struct {
	Name          string   `json:"name" yaml:"name" validate:"required"`
	Address       string   `json:"address" yaml:"address" validate:"required"`
	Eircode       string   `json:"eircode" yaml:"eircode" validate:"required"`
	Description   string   `json:"description" yaml:"description" validate:"required,max=3000"`
	PostalCode    string   `json:"postalCode" yaml:"postalCode" validate:"required"`
	Rent          float64  `json:"rent" yaml:"rent" validate:"gte=0"`
	Deposit       float64  `json:"deposit" yaml:"deposit" validate:"gte=0"`
	Area          float64  `json:"area" yaml:"area" validate:"gte=0"`
	AvailableFrom string   `json:"availableFrom" yaml:"availableFrom" validate:"required,datetime=2006-01-02"`
	EnergyRatings string   `json:"energyRatings" yaml:"energyRatings" validate:"required"`
	Bedrooms      int      `json:"bedrooms" yaml:"bedrooms" validate:"gte=0"`
	Bathrooms     int      `json:"bathrooms" yaml:"bathrooms" validate:"gte=0"`
	Amenities     []string `json:"amenities" yaml:"amenities"`
	Images        []string `json:"images" yaml:"images"`
	PropertyType  string   `json:"propertyType" yaml:"propertyType" validate:"required"`
}

// Clone returns a deep copy so state transitions never share slices.
func (d PropertyDraft) Clone() PropertyDraft {
	out := d
	out.Amenities = append([]string(nil), d.Amenities...)
	out.Images = append([]string(nil), d.Images...)
	return out
}

// PropertyStatus is the listing lifecycle state.
type PropertyStatus string

const (
	StatusActive   PropertyStatus = "Active"
	StatusInactive PropertyStatus = "Inactive"
)

// UnmarshalJSON accepts both the stored codes ("A", "I") and the long names.
func (s *PropertyStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("property status: %v", err)
	}
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A", "ACTIVE":
		*s = StatusActive
	case "I", "INACTIVE":
		*s = StatusInactive
	case "":
		*s = ""
	default:
		return fmt.Errorf("unknown property status %q", raw)
	}
	return nil
}

// Property is the server-owned listing record.
type Property struct {
	ID string `json:"id"`
	PropertyDraft
	Status     PropertyStatus `json:"status,omitempty"`
	PostedBy   string         `json:"postedBy,omitempty"`
	PostedOn   string         `json:"postedOn,omitempty"`
	ModifiedOn string         `json:"modifiedOn,omitempty"`
}

// NavigationState carries a record between views, the way the browser router hands it over.
type NavigationState struct {
	Property *Property `json:"property,omitempty"`
	From     string    `json:"from,omitempty"`
}
