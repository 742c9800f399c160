package transformers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spacia-portal/internal/models"
)

func TestNormalizeEircode(t *testing.T) {
	a := NewAddressTransformer()
	assert.Equal(t, "D02 XY45", a.NormalizeEircode(" d02xy45 "))
	assert.Equal(t, "D02 XY45", a.NormalizeEircode("d02 xy45"))
	assert.Equal(t, "D02", a.NormalizeEircode("d02"))
}

func TestNormalizeDraft(t *testing.T) {
	p := NewPropertyTransformer()
	in := models.PropertyDraft{
		Name:        "  Harbour View ",
		Address:     " 1   Quay  St ",
		Eircode:     "d02xy45",
		Description: " line one\n\nline two ",
	}

	out := p.NormalizeDraft(in)
	assert.Equal(t, "Harbour View", out.Name)
	assert.Equal(t, "1 Quay St", out.Address)
	assert.Equal(t, "D02 XY45", out.Eircode)
	assert.Equal(t, "line one\n\nline two", out.Description)
	assert.NotNil(t, out.Amenities)
	assert.NotNil(t, out.Images)
	assert.Equal(t, "  Harbour View ", in.Name)
}

func TestDraftFromProperty(t *testing.T) {
	p := NewPropertyTransformer()
	property := &models.Property{
		ID: "p1",
		PropertyDraft: models.PropertyDraft{
			Name:          "Harbour View",
			AvailableFrom: "2030-01-01T00:00:00.000+00:00",
			Images:        []string{"https://cdn/a.jpg"},
		},
		Status: models.StatusActive,
	}

	draft := p.DraftFromProperty(property)
	assert.Equal(t, "2030-01-01", draft.AvailableFrom)
	assert.Equal(t, []string{"https://cdn/a.jpg"}, draft.Images)
	assert.NotNil(t, draft.Amenities)

	draft.Images[0] = "changed"
	assert.Equal(t, "https://cdn/a.jpg", property.Images[0])

	assert.NotNil(t, p.DraftFromProperty(nil).Images)
}
