package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorPassesThroughAppError(t *testing.T) {
	original := NewServerError("create property", http.StatusInternalServerError, "boom")
	wrapped := fmt.Errorf("submit: %w", original)

	mapped := MapError(wrapped)
	assert.Same(t, original, mapped)
	assert.Equal(t, KindServer, mapped.Kind)
}

func TestMapErrorDeadlineIsNetwork(t *testing.T) {
	mapped := MapError(fmt.Errorf("fetch: %w", context.DeadlineExceeded))
	require.NotNil(t, mapped)
	assert.Equal(t, KindNetwork, mapped.Kind)
	assert.Equal(t, http.StatusGatewayTimeout, mapped.HTTPStatus)
}

func TestMapErrorDefaultsToInternal(t *testing.T) {
	mapped := MapError(stderrors.New("unexpected"))
	assert.Equal(t, KindInternal, mapped.Kind)
	assert.Equal(t, MsgInternalError, mapped.UserMessage)
	assert.Nil(t, MapError(nil))
}

func TestNewServerErrorStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodePropertyNotFound},
		{http.StatusInternalServerError, ErrCodeServer},
	}
	for _, tt := range tests {
		err := NewServerError("op", tt.status, "")
		assert.Equal(t, tt.code, err.Code, "status %d", tt.status)
		assert.True(t, IsKind(err, KindServer))
	}
}

func TestValidationErrorListsFields(t *testing.T) {
	err := NewValidationError(map[string]string{"rent": "must be at least 0", "name": "is required"})
	assert.Equal(t, "name: is required; rent: must be at least 0", err.TechnicalMessage)
	assert.Equal(t, "is required", err.Fields["name"])
}

func TestWithUserMessageKeepsValidationMessage(t *testing.T) {
	validation := NewValidationError(map[string]string{"name": "is required"})
	assert.Equal(t, MsgInvalidParameters, WithUserMessage(validation, MsgAddPropertyFailed).UserMessage)

	server := NewServerError("op", http.StatusBadGateway, "")
	rebranded := WithUserMessage(server, MsgAddPropertyFailed)
	assert.Equal(t, MsgAddPropertyFailed, rebranded.UserMessage)
	assert.Equal(t, MsgServiceUnavailable, server.UserMessage)
}

func TestPartialUploadCarriesPropertyID(t *testing.T) {
	err := NewPartialUploadError("p-1", stderrors.New("upload b.jpg"))
	assert.True(t, IsKind(fmt.Errorf("wrapped: %w", err), KindPartialUpload))
	assert.Equal(t, "p-1", err.PropertyID)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("no property in navigation state")
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, MsgPropertyNotFound, err.UserMessage)
	assert.True(t, IsKind(err, KindNotFound))
}
