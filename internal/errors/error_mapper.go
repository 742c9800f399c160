package errors

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	var netErr net.Error
	var urlErr *url.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return &AppError{
			Kind:             KindNetwork,
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgNetworkUnavailable,
			Code:             ErrCodeNetwork,
			HTTPStatus:       http.StatusGatewayTimeout,
			OriginalError:    err,
		}
	case stderrors.As(err, &netErr), stderrors.As(err, &urlErr):
		return &AppError{
			Kind:             KindNetwork,
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgNetworkUnavailable,
			Code:             ErrCodeNetwork,
			HTTPStatus:       http.StatusBadGateway,
			OriginalError:    err,
		}
	default:
		return &AppError{
			Kind:             KindInternal,
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInternalError,
			Code:             ErrCodeInternal,
			HTTPStatus:       http.StatusInternalServerError,
			OriginalError:    err,
		}
	}
}

// WithUserMessage returns a copy of err's AppError carrying a view-specific banner message.
// Validation errors keep their own message since they are rendered inline.
func WithUserMessage(err error, message string) *AppError {
	appErr := MapError(err)
	if appErr == nil || appErr.Kind == KindValidation {
		return appErr
	}
	clone := *appErr
	clone.UserMessage = message
	return &clone
}
