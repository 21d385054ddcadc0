package session

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=mock_store_test.go -package=session

// Store persists token → user id bindings.
type Store interface {
	// Get returns the user bound to token, or ErrSessionNotFound.
	Get(ctx context.Context, token string) (int64, error)
	// Set binds token to userID for ttl. A zero ttl never expires.
	Set(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Delete removes token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
