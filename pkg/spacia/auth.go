package spacia

import (
	"context"
	"net/http"

	"spacia-portal/internal/models"
)

// Login exchanges credentials for a token. A 2xx without a token is returned as-is;
// the caller inspects Message.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	const operation = "login"

	var out models.LoginResponse
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return out, err
	}
	body, err := c.do(operation, req)
	if err != nil {
		return out, err
	}
	if err := decode(operation, body, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Register creates an account. A rejected registration carries the service's message in RemoteMessage.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	const operation = "register"

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/register", reg)
	if err != nil {
		return err
	}
	_, err = c.do(operation, req)
	return err
}
