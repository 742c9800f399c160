package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the portal reads from a listing-service token.
// The portal never holds the signing key, so tokens are decoded, not verified;
// the listing service verifies them on every call.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes token without verifying its signature.
func ParseClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string cannot be empty")
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %v", err)
	}
	return claims, nil
}

// Subject returns the account name carried by the token.
func (c *Claims) Subject() string {
	if c.Username != "" {
		return c.Username
	}
	return c.RegisteredClaims.Subject
}

// Expiry returns the token expiry, or fallback when the token has none.
func (c *Claims) Expiry(fallback time.Time) time.Time {
	if c.ExpiresAt == nil {
		return fallback
	}
	return c.ExpiresAt.Time
}
