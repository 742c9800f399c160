package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies where a failure came from.
type Kind string

const (
	KindNetwork       Kind = "NETWORK"
	KindValidation    Kind = "VALIDATION"
	KindServer        Kind = "SERVER"
	KindPartialUpload Kind = "PARTIAL_UPLOAD"
	KindNotFound      Kind = "NOT_FOUND"
	KindInternal      Kind = "INTERNAL"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	Kind             Kind
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
	// Fields holds field-scoped messages for validation failures.
	Fields map[string]string
	// PropertyID is set when a property was persisted before the failure.
	PropertyID string
	// RemoteStatus and RemoteMessage echo the listing service response, when there was one.
	RemoteStatus  int
	RemoteMessage string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalError == nil {
		return fmt.Sprintf("%s: %s", e.UserMessage, e.TechnicalMessage)
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		Kind:             KindInternal,
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// NewNetworkError wraps a transport failure: the request could not be sent or the response not read.
func NewNetworkError(operation string, err error) *AppError {
	return &AppError{
		Kind:             KindNetwork,
		TechnicalMessage: fmt.Sprintf("%s: request failed: %v", operation, err),
		UserMessage:      MsgNetworkUnavailable,
		Code:             ErrCodeNetwork,
		HTTPStatus:       http.StatusBadGateway,
		OriginalError:    err,
	}
}

// NewServerError records a non-2xx or malformed response from the remote API.
func NewServerError(operation string, status int, detail string) *AppError {
	code := ErrCodeServer
	httpStatus := http.StatusBadGateway
	userMessage := MsgServiceUnavailable
	switch status {
	case http.StatusUnauthorized:
		code, httpStatus, userMessage = ErrCodeUnauthorized, http.StatusUnauthorized, MsgUnauthorized
	case http.StatusForbidden:
		code, httpStatus, userMessage = ErrCodeForbidden, http.StatusForbidden, MsgForbidden
	case http.StatusNotFound:
		code, httpStatus, userMessage = ErrCodePropertyNotFound, http.StatusNotFound, MsgPropertyNotFound
	}
	return &AppError{
		Kind:             KindServer,
		TechnicalMessage: fmt.Sprintf("%s: status=%d, response=%s", operation, status, detail),
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       httpStatus,
		RemoteStatus:     status,
	}
}

// NewValidationError builds a field-scoped validation failure.
func NewValidationError(fields map[string]string) *AppError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return &AppError{
		Kind:             KindValidation,
		TechnicalMessage: strings.Join(parts, "; "),
		UserMessage:      MsgInvalidParameters,
		Code:             ErrCodeInvalidParameters,
		HTTPStatus:       http.StatusBadRequest,
		Fields:           fields,
	}
}

// NewPartialUploadError reports image upload failures after the property record was created.
func NewPartialUploadError(propertyID string, err error) *AppError {
	return &AppError{
		Kind:             KindPartialUpload,
		TechnicalMessage: fmt.Sprintf("property %s persisted but image upload failed: %v", propertyID, err),
		UserMessage:      MsgAddPropertyFailed,
		Code:             ErrCodePartialUpload,
		HTTPStatus:       http.StatusBadGateway,
		OriginalError:    err,
		PropertyID:       propertyID,
	}
}

// NewNotFoundError reports a record the view cannot show. No remote call is implied.
func NewNotFoundError(detail string) *AppError {
	return &AppError{
		Kind:             KindNotFound,
		TechnicalMessage: detail,
		UserMessage:      MsgPropertyNotFound,
		Code:             ErrCodePropertyNotFound,
		HTTPStatus:       http.StatusNotFound,
	}
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Common error codes
const (
	ErrCodePropertyNotFound   = "PROPERTY_NOT_FOUND"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInvalidParameters  = "INVALID_PARAMETERS"
	ErrCodeNetwork            = "NETWORK_ERROR"
	ErrCodeServer             = "SERVER_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodePartialUpload      = "PARTIAL_UPLOAD"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
