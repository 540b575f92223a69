// internal/session/session.go
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the profile snapshot persisted alongside the tokens
type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Session represents the locally persisted authentication state
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	User         *User     `json:"user,omitempty"`
	SavedAt      time.Time `json:"saved_at"`
}

// AccessTokenExpiry extracts the expiry claim from the access token.
// The token is parsed without signature verification: the client never
// holds the signing secret, it only needs to know when to re-login.
func (s *Session) AccessTokenExpiry() (time.Time, error) {
	if s.AccessToken == "" {
		return time.Time{}, fmt.Errorf("session has no access token")
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.AccessToken, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("access token carries no expiry claim")
	}

	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether the access token expiry has passed.
// Tokens without a readable expiry are treated as live and left for the
// server to reject.
func (s *Session) IsExpired() bool {
	expiry, err := s.AccessTokenExpiry()
	if err != nil {
		return false
	}
	return time.Now().UTC().After(expiry)
}
