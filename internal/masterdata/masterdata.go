// Package masterdata loads the reference lists that populate form choices.
package masterdata

import (
	"context"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/models"
	"spacia-portal/pkg/logger"
)

// Fetcher is the remote call behind the client.
type Fetcher interface {
	FetchMasterData(ctx context.Context) (models.MasterData, error)
}

// Client fetches master data once per view mount. It keeps no state between calls.
type Client struct {
	fetcher Fetcher
}

func NewClient(fetcher Fetcher) *Client {
	return &Client{fetcher: fetcher}
}

// Fetch returns the reference lists or a NetworkError / ServerError.
func (c *Client) Fetch(ctx context.Context) (models.MasterData, error) {
	data, err := c.fetcher.FetchMasterData(ctx)
	if err != nil {
		return models.MasterData{}, apperrors.MapError(err)
	}
	return data, nil
}

// Loaded is what a view renders after mounting: options plus an optional banner.
type Loaded struct {
	Data   models.MasterData `json:"masterData"`
	Banner string            `json:"error,omitempty"`
}

// Load fetches for a view. On failure the view still renders with empty option lists and a banner.
func (c *Client) Load(ctx context.Context) Loaded {
	data, err := c.Fetch(ctx)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to load master data: error=%v", err)
		return Loaded{Data: Empty(), Banner: apperrors.MsgMasterDataUnavailable}
	}
	return Loaded{Data: data}
}

// Empty returns master data with every list present but empty.
func Empty() models.MasterData {
	return models.MasterData{
		Amenities:     []string{},
		PropertyType:  []string{},
		EnergyRatings: []string{},
		Locations:     []string{},
	}
}
