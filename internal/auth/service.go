package auth

import (
	"context"
	"fmt"

	"portfolio-admin/internal/api"
	"portfolio-admin/internal/common/config"
	"portfolio-admin/internal/common/errors"
	"portfolio-admin/internal/common/logger"
	"portfolio-admin/internal/models"
	"portfolio-admin/internal/session"
)

// Service drives the session state machine:
// unauthenticated -> Login -> authenticated -> Logout or any 401 -> unauthenticated.
type Service struct {
	api        *api.AuthAPI
	session    *session.Session
	navigator  Navigator
	loginRoute string
	logger     logger.Logger
}

func NewService(authAPI *api.AuthAPI, sess *session.Session, nav Navigator, loginRoute string, log logger.Logger) *Service {
	if loginRoute == "" {
		loginRoute = config.DefaultLoginRoute
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{api: authAPI, session: sess, navigator: nav, loginRoute: loginRoute, logger: log}
}

// Login stores the token and username only when the backend accepts the credentials.
func (s *Service) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	resp, err := s.api.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.NewDeserializationError(200, fmt.Errorf("login response has no token"))
	}

	if err := s.session.SetToken(resp.Token); err != nil {
		return nil, err
	}
	stored := resp.Username
	if stored == "" {
		stored = username
	}
	if err := s.session.SetUsername(stored); err != nil {
		if clearErr := s.session.Clear(); clearErr != nil {
			errors.LogError(s.logger, "failed to roll back partial login", clearErr, nil)
		}
		return nil, err
	}

	s.logger.Info("logged in", map[string]interface{}{"username": stored})
	return resp, nil
}

// Logout clears the session and navigates to the login route.
func (s *Service) Logout() error {
	if err := s.session.Clear(); err != nil {
		return err
	}
	s.navigator.Navigate(s.loginRoute)
	return nil
}

func (s *Service) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}

func (s *Service) CurrentUsername() (string, bool) {
	return s.session.Username()
}

// ChangePassword changes the password of the logged-in admin.
func (s *Service) ChangePassword(ctx context.Context, newPassword string) (*models.MessageResponse, error) {
	username, err := s.requireUsername()
	if err != nil {
		return nil, err
	}
	return s.api.ChangePassword(ctx, models.ChangePasswordRequest{
		Username:    username,
		NewPassword: newPassword,
	})
}

// ChangeUsername renames the logged-in admin and keeps the stored username in step.
func (s *Service) ChangeUsername(ctx context.Context, newUsername string) (*models.MessageResponse, error) {
	oldUsername, err := s.requireUsername()
	if err != nil {
		return nil, err
	}
	resp, err := s.api.ChangeUsername(ctx, models.ChangeUsernameRequest{
		OldUsername: oldUsername,
		NewUsername: newUsername,
	})
	if err != nil {
		return nil, err
	}
	if err := s.session.SetUsername(newUsername); err != nil {
		return resp, err
	}
	return resp, nil
}

func (s *Service) requireUsername() (string, error) {
	username, ok := s.session.Username()
	if !ok || username == "" {
		return "", errors.NewValidationError("no username stored; log in first")
	}
	return username, nil
}
