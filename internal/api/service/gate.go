package service

import (
	"context"
	"ctchen222/Recipe-Box/internal/api/models"
	"ctchen222/Recipe-Box/internal/api/repository"
	"ctchen222/Recipe-Box/internal/session"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	tracer = otel.Tracer("api.service")
	meter  = otel.Meter("api.service")
)

// gate resolves the identity behind a session. Both services embed it so
// every identity-requiring operation checks the session the same way.
type gate struct {
	store    repository.Store
	sessions *session.Manager
}

// requireUser returns the live user behind sess. A session whose user no
// longer exists is destroyed and reported as ErrUnauthorized.
func (g *gate) requireUser(ctx context.Context, sess *session.Session) (*models.User, error) {
	userID, ok := sess.UserID()
	if !ok {
		return nil, models.ErrUnauthorized
	}

	user, err := g.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			g.heal(ctx, sess)
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// heal drops a session that points at a user who is gone.
func (g *gate) heal(ctx context.Context, sess *session.Session) {
	userID, _ := sess.UserID()
	slog.WarnContext(ctx, "session refers to a missing user, clearing it", "user_id", userID)
	if err := g.sessions.Destroy(ctx, sess); err != nil && !errors.Is(err, session.ErrNoSession) {
		slog.ErrorContext(ctx, "failed to clear dangling session", "error", err)
	}
}

func counter(name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		slog.Error("failed to create counter", "name", name, "error", err)
		return noop.Int64Counter{}
	}
	return c
}
