// internal/domain/auth/service.go
package auth

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/session"
)

// Service handles authentication against the marketplace API and keeps
// the local session in sync
type Service struct {
	api      *api.Client
	sessions *session.Manager
	logger   *logrus.Logger
}

// NewService creates a new auth service
func NewService(client *api.Client, sessions *session.Manager, logger *logrus.Logger) *Service {
	return &Service{
		api:      client,
		sessions: sessions,
		logger:   logger,
	}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents account creation data
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

// tokenResponse is the payload returned by login, register and refresh
type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	User         *session.User `json:"user,omitempty"`
}

// Login authenticates and persists the returned session
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*session.User, error) {
	var resp tokenResponse
	if err := s.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}

	sess := &session.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.logger.WithField("email", req.Email).Info("Logged in")
	return resp.User, nil
}

// Register creates an account and persists the returned session
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*session.User, error) {
	var resp tokenResponse
	if err := s.api.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	// Some deployments require email verification before issuing tokens
	if resp.AccessToken != "" {
		sess := &session.Session{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			User:         resp.User,
		}
		if err := s.sessions.Set(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
	}

	return resp.User, nil
}

// Refresh exchanges the refresh token for a new token pair
func (s *Service) Refresh(ctx context.Context) error {
	refreshToken := s.sessions.RefreshToken()
	if refreshToken == "" {
		return fmt.Errorf("no refresh token held")
	}

	body := map[string]string{"refresh_token": refreshToken}
	var resp tokenResponse
	if err := s.api.Post(ctx, "/auth/refresh", body, &resp); err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	current := s.sessions.Current()
	sess := &session.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}
	if sess.User == nil && current != nil {
		sess.User = current.User
	}
	if sess.RefreshToken == "" {
		sess.RefreshToken = refreshToken
	}

	return s.sessions.Set(ctx, sess)
}

// Profile fetches the authenticated user's profile
func (s *Service) Profile(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// Logout revokes the session server-side when possible, then always
// clears local state
func (s *Service) Logout(ctx context.Context) error {
	if s.sessions.IsAuthenticated() {
		if err := s.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
			// Local logout proceeds regardless
			s.logger.WithError(err).Warn("Server-side logout failed")
		}
	}
	return s.sessions.Clear(ctx)
}
