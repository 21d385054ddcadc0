package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Manager performs session state transitions against a Store.
type Manager struct {
	store    Store
	ttl      time.Duration
	newToken func() string
}

// NewManager creates a Manager whose sessions live for ttl.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		store:    store,
		ttl:      ttl,
		newToken: uuid.NewString,
	}
}

// TTL is the lifetime of a newly established session.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Load resolves token into a session. Empty, unknown and expired tokens
// yield an unauthenticated session; only store failures are errors.
func (m *Manager) Load(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return Anonymous(), nil
	}

	userID, err := m.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Anonymous(), nil
		}
		return Anonymous(), fmt.Errorf("failed to load session: %w", err)
	}
	return &Session{token: token, userID: userID}, nil
}

// Establish moves s to Authenticated(userID) under a fresh token. Any token
// s held before is revoked.
func (m *Manager) Establish(ctx context.Context, s *Session, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("invalid user id %d", userID)
	}

	token := m.newToken()
	if err := m.store.Set(ctx, token, userID, m.ttl); err != nil {
		return fmt.Errorf("failed to establish session: %w", err)
	}

	if s.token != "" {
		if err := m.store.Delete(ctx, s.token); err != nil {
			slog.WarnContext(ctx, "failed to revoke previous session token", "error", err)
		}
	}

	s.token = token
	s.userID = userID
	return nil
}

// Destroy moves s back to Unauthenticated. It fails with ErrNoSession when
// s is not authenticated.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	if !s.Authenticated() {
		return ErrNoSession
	}
	if err := m.store.Delete(ctx, s.token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	s.token = ""
	s.userID = 0
	return nil
}
