package spacia

import (
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	BearerToken() string
}

// Client talks to the SPACIA listing service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a new listing service client. baseURL includes the API version, e.g. http://host/api/v1.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTP lets tests inject a transport.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// WithTokens returns a copy of the client that authenticates with ts.
func (c *Client) WithTokens(ts TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

// BaseURL returns the versioned API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) bearerToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.BearerToken()
}
