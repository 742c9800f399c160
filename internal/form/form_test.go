package form

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/models"
)

var master = models.MasterData{
	Amenities:     []string{"Parking", "Gym", "Balcony"},
	PropertyType:  []string{"Apartment"},
	EnergyRatings: []string{"B1"},
	Locations:     []string{"Dublin 2"},
}

func fill(m *Model) *Model {
	return m.SetField(FieldName, "Harbour View").
		SetField(FieldAddress, "1 Quay St").
		SetField(FieldEircode, "D02XY45").
		SetField(FieldDescription, "Bright").
		SetField(FieldPostalCode, "Dublin 2").
		SetField(FieldRent, "2100").
		SetField(FieldAvailableFrom, "2030-01-01").
		SetField(FieldEnergyRatings, "B1").
		SetField(FieldPropertyType, "Apartment")
}

func TestSetFieldNumericParsing(t *testing.T) {
	d := models.PropertyDraft{}
	assert.Equal(t, 0.0, SetField(d, FieldRent, "").Rent)
	assert.Equal(t, 0.0, SetField(d, FieldRent, "abc").Rent)
	assert.Equal(t, 1250.5, SetField(d, FieldRent, " 1250.5 ").Rent)
	assert.Equal(t, 3, SetField(d, FieldBedrooms, "3.9").Bedrooms)
	assert.Equal(t, 0, SetField(d, FieldBathrooms, "NaN").Bathrooms)
}

func TestSetFieldDescriptionLimit(t *testing.T) {
	d := models.PropertyDraft{Description: "keep"}
	assert.Equal(t, "keep", SetField(d, FieldDescription, strings.Repeat("x", 3001)).Description)

	limit := strings.Repeat("é", 3000)
	assert.Equal(t, limit, SetField(d, FieldDescription, limit).Description)
}

func TestSetFieldIgnoresListsAndUnknown(t *testing.T) {
	d := models.PropertyDraft{Name: "n", Amenities: []string{"Gym"}}
	assert.Equal(t, d, SetField(d, "amenities", "Parking"))
	assert.Equal(t, d, SetField(d, "images", "x.jpg"))
	assert.Equal(t, d, SetField(d, "colour", "blue"))
}

func TestSetFieldDoesNotMutateInput(t *testing.T) {
	d := models.PropertyDraft{Name: "before", Amenities: []string{"Gym"}}
	out := SetField(d, FieldName, "after")
	out.Amenities[0] = "changed"
	assert.Equal(t, "before", d.Name)
	assert.Equal(t, "Gym", d.Amenities[0])
}

func TestToggleAmenityIsInvolution(t *testing.T) {
	d := models.PropertyDraft{Amenities: []string{"Parking", "Gym"}}
	for _, a := range []string{"Gym", "Balcony"} {
		twice := ToggleAmenity(ToggleAmenity(d, a), a)
		assert.ElementsMatch(t, d.Amenities, twice.Amenities, a)
	}
	assert.Equal(t, []string{"Parking"}, ToggleAmenity(d, "Gym").Amenities)
	assert.Equal(t, []string{"Parking", "Gym", "Balcony"}, ToggleAmenity(d, "Balcony").Amenities)
}

func TestModelValidity(t *testing.T) {
	m := NewAddModel(master)
	m.now = func() time.Time { return time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC) }
	assert.False(t, m.IsValid())

	fill(m)
	require.NoError(t, m.Validate())
	assert.True(t, m.IsValid())

	m.SetField(FieldPropertyType, "")
	err := m.Validate()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "propertyType")
}

func TestModelBlocksMissingEnergyRatingAndPostalCode(t *testing.T) {
	for _, field := range []string{FieldEnergyRatings, FieldPostalCode} {
		m := fill(NewAddModel(master))
		m.now = func() time.Time { return time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC) }
		m.SetField(field, "")
		assert.False(t, m.IsValid(), field)
	}
}

func TestUpdateModelAllowsPastDate(t *testing.T) {
	draft := fill(NewAddModel(master)).Draft()
	draft.AvailableFrom = "2020-01-01"

	m := NewUpdateModel(master, draft)
	assert.True(t, m.IsValid())
	assert.False(t, m.IsNew())
}
