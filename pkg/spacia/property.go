package spacia

import (
	"context"
	"net/http"
	"net/url"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/models"
)

// ListProperties returns every active listing.
func (c *Client) ListProperties(ctx context.Context) ([]models.Property, error) {
	return c.listProperties(ctx, "list_properties", "/property")
}

// MyProperties returns the listings posted by the session user.
func (c *Client) MyProperties(ctx context.Context) ([]models.Property, error) {
	return c.listProperties(ctx, "my_properties", "/property/myProducts")
}

func (c *Client) listProperties(ctx context.Context, operation, path string) ([]models.Property, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(operation, req)
	if err != nil {
		return nil, err
	}
	var properties []models.Property
	if err := decode(operation, body, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// GetProperty fetches one listing by id.
func (c *Client) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	const operation = "get_property"

	req, err := c.newJSONRequest(ctx, http.MethodGet, "/property/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(operation, req)
	if err != nil {
		return nil, err
	}
	var property models.Property
	if err := decode(operation, body, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// CreateProperty persists draft without images and returns the issued property id.
// Images are always attached afterwards through UploadImage.
func (c *Client) CreateProperty(ctx context.Context, draft models.PropertyDraft) (string, error) {
	const operation = "create_property"

	payload := draft.Clone()
	payload.Images = []string{}
	if payload.Amenities == nil {
		payload.Amenities = []string{}
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/property", payload)
	if err != nil {
		return "", err
	}
	body, err := c.do(operation, req)
	if err != nil {
		return "", err
	}

	var resp models.ResponseModel
	if err := decode(operation, body, &resp); err != nil {
		return "", err
	}
	if !resp.Succeeded() || resp.CreationID == "" {
		return "", apperrors.NewServerError(operation, http.StatusOK, "invalid response from server: status="+resp.Status+", creationId="+resp.CreationID)
	}
	return resp.CreationID, nil
}

// UpdateProperty replaces the listing with the full draft.
func (c *Client) UpdateProperty(ctx context.Context, id string, draft models.PropertyDraft) error {
	const operation = "update_property"

	payload := draft.Clone()
	if payload.Amenities == nil {
		payload.Amenities = []string{}
	}
	if payload.Images == nil {
		payload.Images = []string{}
	}

	req, err := c.newJSONRequest(ctx, http.MethodPut, "/property/"+url.PathEscape(id), payload)
	if err != nil {
		return err
	}
	body, err := c.do(operation, req)
	if err != nil {
		return err
	}
	return checkEnvelope(operation, body)
}

// DeleteProperty marks the listing inactive.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	const operation = "delete_property"

	req, err := c.newJSONRequest(ctx, http.MethodDelete, "/property/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	body, err := c.do(operation, req)
	if err != nil {
		return err
	}
	return checkEnvelope(operation, body)
}

// ContactOwner asks the service to email the listing owner on the session user's behalf.
func (c *Client) ContactOwner(ctx context.Context, id string) error {
	const operation = "contact_owner"

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/property/contact/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	body, err := c.do(operation, req)
	if err != nil {
		return err
	}
	return checkEnvelope(operation, body)
}
