// Package commands implements spaciactl, a terminal front end for the listing service.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/services"
	"spacia-portal/internal/session"
	"spacia-portal/internal/upload"
	"spacia-portal/internal/validators"
	"spacia-portal/pkg/config"
	"spacia-portal/pkg/spacia"

	"github.com/fatih/color"
)

// Env is what every command runs against.
type Env struct {
	Config     *config.Config
	Users      *services.UserService
	Properties *services.PropertyService
	Out        io.Writer

	sessions    *session.FileStore
	currentPath string
}

// NewEnv wires the services to a file-backed session store at sessionPath.
func NewEnv(cfg *config.Config, sessionPath string, out io.Writer) *Env {
	sessions := session.NewFileStore(sessionPath)
	client := spacia.NewClient(cfg.BaseURL(), cfg.API.Timeout)
	return &Env{
		Config: cfg,
		Users:  services.NewUserService(client, validators.NewUserValidator(), sessions, cfg.Session.TTL),
		Properties: services.NewPropertyService(
			client,
			upload.Policy(cfg.Upload.FailurePolicy),
			upload.NewSelector(cfg.Upload.MaxFileBytes),
		),
		Out:         out,
		sessions:    sessions,
		currentPath: filepath.Join(filepath.Dir(sessionPath), "current"),
	}
}

// Current returns the signed-in session, or nil when nobody is logged in.
func (e *Env) Current(ctx context.Context) (*session.Session, error) {
	data, err := os.ReadFile(e.currentPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current session: %v", err)
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return nil, nil
	}
	sess, err := e.Users.Session(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	return sess, err
}

// RequireCurrent is Current for commands that need a login.
func (e *Env) RequireCurrent(ctx context.Context) (*session.Session, error) {
	sess, err := e.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errors.New(apperrors.MsgLoginRequired + " Run: spaciactl login")
	}
	return sess, nil
}

func (e *Env) setCurrent(id string) error {
	if err := os.MkdirAll(filepath.Dir(e.currentPath), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %v", err)
	}
	return os.WriteFile(e.currentPath, []byte(id+"\n"), 0o600)
}

func (e *Env) clearCurrent() error {
	if err := os.Remove(e.currentPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear current session: %v", err)
	}
	return nil
}

func (e *Env) success(format string, args ...interface{}) {
	fmt.Fprintln(e.Out, color.GreenString(format, args...))
}

func (e *Env) banner(message string) {
	if message != "" {
		fmt.Fprintln(e.Out, color.YellowString(message))
	}
}

// userError prefers the message meant for people over the technical one.
func userError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if len(appErr.Fields) > 0 {
			return fmt.Errorf("%s (%s)", appErr.UserMessage, appErr.TechnicalMessage)
		}
		return errors.New(appErr.UserMessage)
	}
	return err
}
