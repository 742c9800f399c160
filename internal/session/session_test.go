package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtFor(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func TestNewUsesTokenClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s := New(jwtFor(t, "sam", exp), "typed-name", 24*time.Hour)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "sam", s.Username)
	assert.True(t, s.ExpiresAt.Equal(exp))
	assert.Equal(t, s.Token, s.BearerToken())
}

func TestNewOpaqueTokenFallsBackToTTL(t *testing.T) {
	s := New("opaque", "sam", time.Hour)
	assert.Equal(t, "sam", s.Username)
	assert.False(t, s.Expired(time.Now()))
	assert.True(t, s.Expired(time.Now().Add(2*time.Hour)))
}

func TestNilSessionHasNoToken(t *testing.T) {
	var s *Session
	assert.Empty(t, s.BearerToken())
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := New("opaque", "sam", time.Hour)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam", got.Username)

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := New("opaque", "sam", time.Hour)
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, s.ID))

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	ctx := context.Background()
	s := New("opaque", "sam", time.Hour)

	require.NoError(t, NewFileStore(path).Save(ctx, s))

	got, err := NewFileStore(path).Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "opaque", got.Token)

	require.NoError(t, NewFileStore(path).Delete(ctx, s.ID))
	_, err = NewFileStore(path).Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
