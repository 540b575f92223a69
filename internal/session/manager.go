// internal/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Manager holds the current session in memory and keeps it in sync with
// the backing store. It is the single shared authentication resource:
// every API request reads the token through it, and a 401 clears it
// wholesale.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	current *Session
}

// NewManager creates a session manager over the given store
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Restore loads a previously persisted session at application start.
// A missing session is not an error; the client simply starts logged out.
func (m *Manager) Restore(ctx context.Context) error {
	sess, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to restore session: %w", err)
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
	return nil
}

// Set replaces the current session and persists it (login, token refresh)
func (m *Manager) Set(ctx context.Context, sess *Session) error {
	sess.SavedAt = time.Now().UTC()
	if err := m.store.Save(ctx, sess); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
	return nil
}

// Clear drops the current session and wipes the store. Used on logout
// and on any 401 response; blunt, session-wide invalidation.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	return m.store.Clear(ctx)
}

// Token returns the current access token, or "" when logged out
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.AccessToken
}

// RefreshToken returns the current refresh token, or "" when absent
func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.RefreshToken
}

// User returns the persisted user snapshot, or nil when logged out
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	return m.current.User
}

// IsAuthenticated reports whether a session with an access token is held
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// Current returns a copy of the session, or nil when logged out
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	copied := *m.current
	return &copied
}
