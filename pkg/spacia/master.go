package spacia

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/models"
)

// FetchMasterData retrieves the reference lists. Missing lists default to empty;
// a list field holding anything other than strings is rejected.
func (c *Client) FetchMasterData(ctx context.Context) (models.MasterData, error) {
	const operation = "fetch_master_data"

	req, err := c.newJSONRequest(ctx, http.MethodGet, "/master", nil)
	if err != nil {
		return models.MasterData{}, err
	}
	body, err := c.do(operation, req)
	if err != nil {
		return models.MasterData{}, err
	}

	var raw map[string]json.RawMessage
	if err := decode(operation, body, &raw); err != nil {
		return models.MasterData{}, err
	}

	var data models.MasterData
	fields := []struct {
		key  string
		dest *[]string
	}{
		{"amenities", &data.Amenities},
		{"propertyType", &data.PropertyType},
		{"energyRatings", &data.EnergyRatings},
		{"locations", &data.Locations},
	}
	for _, f := range fields {
		*f.dest = []string{}
		value, ok := raw[f.key]
		if !ok || string(value) == "null" {
			continue
		}
		if err := json.Unmarshal(value, f.dest); err != nil {
			return models.MasterData{}, apperrors.NewServerError(operation, http.StatusOK, "master data field "+f.key+" is not a list of strings")
		}
	}
	return data, nil
}
