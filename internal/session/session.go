// Package session tracks who is signed in to the portal and the token used on their behalf.
package session

import (
	"context"
	"errors"
	"time"

	"spacia-portal/internal/auth"
	"spacia-portal/pkg/logger"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session binds a portal session id to a listing-service token.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// New creates a session for token. The username and expiry come from the token claims
// when it is a JWT; otherwise username and now+ttl are used.
func New(token, username string, ttl time.Duration) *Session {
	now := time.Now()
	expires := now.Add(ttl)

	if claims, err := auth.ParseClaims(token); err == nil {
		if subject := claims.Subject(); subject != "" {
			username = subject
		}
		if exp := claims.Expiry(expires); exp.Before(expires) {
			expires = exp
		}
	} else {
		logger.GlobalLogger.Debugf("Session token is not a JWT, using configured TTL: %v", err)
	}

	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: expires,
	}
}

// BearerToken lets a session authenticate listing-service calls.
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	return s.Token
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TTL returns the remaining lifetime at now.
func (s *Session) TTL(now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
