package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("listing-service-secret"))
	require.NoError(t, err)
	return token
}

func TestParseClaimsReadsSubjectAndExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signed(t, jwt.RegisteredClaims{
		Subject:   "sam",
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "sam", claims.Subject())
	assert.True(t, claims.Expiry(time.Time{}).Equal(exp))
}

func TestParseClaimsPrefersUsernameClaim(t *testing.T) {
	token := signed(t, &Claims{Username: "alex", RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}})

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alex", claims.Subject())
}

func TestParseClaimsExpiryFallback(t *testing.T) {
	token := signed(t, jwt.RegisteredClaims{Subject: "sam"})
	fallback := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, fallback, claims.Expiry(fallback))
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)

	_, err = ParseClaims("")
	assert.Error(t, err)
}
