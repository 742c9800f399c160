package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/models"
	"spacia-portal/internal/session"
	"spacia-portal/internal/validators"
	"spacia-portal/pkg/logger"
	"spacia-portal/pkg/spacia"
)

// BadCredentialsMessage is what the listing service answers for a wrong password.
const BadCredentialsMessage = "Bad credentials"

type UserService struct {
	client    *spacia.Client
	validator validators.UserValidator
	sessions  session.Store
	ttl       time.Duration
}

func NewUserService(client *spacia.Client, validator validators.UserValidator, sessions session.Store, ttl time.Duration) *UserService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UserService{
		client:    client,
		validator: validator,
		sessions:  sessions,
		ttl:       ttl,
	}
}

// Login signs in and stores a session holding the issued token.
func (s *UserService) Login(ctx context.Context, creds models.Credentials) (*session.Session, error) {
	if fields := s.validator.ValidateLogin(creds); len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		return nil, loginError(err)
	}

	if resp.Token == "" {
		message := apperrors.MsgLoginFailed
		if resp.Message == BadCredentialsMessage {
			message = apperrors.MsgInvalidCredentials
		}
		logger.GlobalLogger.Warnf("Login rejected: username=%s, message=%s", creds.Username, resp.Message)
		appErr := apperrors.NewServerError("login", http.StatusUnauthorized, resp.Message)
		appErr.UserMessage = message
		appErr.RemoteStatus = http.StatusOK
		appErr.RemoteMessage = resp.Message
		return nil, appErr
	}

	sess := session.New(resp.Token, creds.Username, s.ttl)
	if err := s.sessions.Save(ctx, sess); err != nil {
		logger.GlobalLogger.Errorf("Failed to save session: username=%s, error=%v", sess.Username, err)
		return nil, apperrors.NewAppError(err.Error(), apperrors.MsgLoginUnexpected, apperrors.ErrCodeInternal, http.StatusInternalServerError, err)
	}

	logger.GlobalLogger.Printf("User logged in: username=%s, session_expires=%s", sess.Username, sess.ExpiresAt.Format(time.RFC3339))
	return sess, nil
}

func loginError(err error) *apperrors.AppError {
	appErr := apperrors.MapError(err)
	clone := *appErr
	switch clone.Kind {
	case apperrors.KindNetwork:
		clone.UserMessage = apperrors.MsgNetworkUnavailable
	case apperrors.KindServer:
		switch clone.RemoteStatus {
		case http.StatusUnauthorized:
			clone.UserMessage = apperrors.MsgInvalidCredentials
		case http.StatusForbidden:
			clone.UserMessage = apperrors.MsgForbidden
		case http.StatusNotFound:
			clone.UserMessage = apperrors.MsgLoginServiceNotFound
			clone.Code = apperrors.ErrCodeServiceUnavailable
			clone.HTTPStatus = http.StatusBadGateway
		default:
			clone.UserMessage = apperrors.MsgLoginUnexpected
		}
	default:
		clone.UserMessage = apperrors.MsgUnexpected
	}
	return &clone
}

// Register creates an account. It does not sign the user in.
func (s *UserService) Register(ctx context.Context, form models.RegistrationForm) error {
	if fields := s.validator.ValidateRegister(form); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	if err := s.client.Register(ctx, form.Registration); err != nil {
		appErr := apperrors.WithUserMessage(err, apperrors.MsgRegistrationFailed)
		if appErr.RemoteMessage != "" {
			appErr.UserMessage = appErr.RemoteMessage
		}
		return appErr
	}

	logger.GlobalLogger.Printf("User registered: username=%s", form.Username)
	return nil
}

// Logout drops the session. Unknown ids are ignored.
func (s *UserService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		logger.GlobalLogger.Errorf("Failed to delete session: error=%v", err)
		return apperrors.MapError(err)
	}
	return nil
}

// Session returns the live session for id, or session.ErrNotFound.
func (s *UserService) Session(ctx context.Context, id string) (*session.Session, error) {
	if id == "" {
		return nil, session.ErrNotFound
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logger.GlobalLogger.Errorf("Failed to read session: error=%v", err)
		}
		return nil, err
	}
	return sess, nil
}
