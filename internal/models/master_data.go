package models

// MasterData holds the server-provided enumerations used to populate form choices.
type MasterData struct {
	Amenities     []string `json:"amenities"`
	PropertyType  []string `json:"propertyType"`
	EnergyRatings []string `json:"energyRatings"`
	Locations     []string `json:"locations"`
}

// Empty reports whether no option list was loaded.
func (m MasterData) Empty() bool {
	return len(m.Amenities) == 0 && len(m.PropertyType) == 0 &&
		len(m.EnergyRatings) == 0 && len(m.Locations) == 0
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func (m MasterData) HasAmenity(v string) bool      { return contains(m.Amenities, v) }
func (m MasterData) HasPropertyType(v string) bool { return contains(m.PropertyType, v) }
func (m MasterData) HasEnergyRating(v string) bool { return contains(m.EnergyRatings, v) }
func (m MasterData) HasLocation(v string) bool     { return contains(m.Locations, v) }
