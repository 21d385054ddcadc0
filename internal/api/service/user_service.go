package service

import (
	"context"
	"ctchen222/Recipe-Box/internal/api/models"
	"ctchen222/Recipe-Box/internal/api/repository"
	"ctchen222/Recipe-Box/internal/session"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// AuthService defines the session authentication operations.
type AuthService interface {
	Signup(ctx context.Context, sess *session.Session, req *models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, sess *session.Session, req *models.LoginRequest) (*models.User, error)
	Logout(ctx context.Context, sess *session.Session) error
	CurrentUser(ctx context.Context, sess *session.Session) (*models.User, error)
	DeleteAccount(ctx context.Context, sess *session.Session) error
}

type authService struct {
	gate
	signups metric.Int64Counter
	logins  metric.Int64Counter
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.Store, sessions *session.Manager) AuthService {
	return &authService{
		gate:    gate{store: store, sessions: sessions},
		signups: counter("recipebox.signups", "Completed signups"),
		logins:  counter("recipebox.logins", "Login attempts by outcome"),
	}
}

// Signup creates a user and authenticates sess as that user.
func (s *authService) Signup(ctx context.Context, sess *session.Session, req *models.SignupRequest) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Signup")
	defer span.End()

	user, err := models.NewUser(req.Username, req.Bio, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, &models.FieldError{Field: "password", Kind: models.ErrMissingField, Message: "password is required"}
	}

	// Advisory only: skips hashing for names that are obviously taken. The
	// unique constraint below is what decides.
	taken, err := s.store.Users().ExistsByUsername(ctx, user.Username)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if taken {
		return nil, models.ErrDuplicateUsername
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		if !errors.Is(err, models.ErrDuplicateUsername) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to create user")
		}
		return nil, err
	}
	user.Recipes = []models.Recipe{}

	if err := s.sessions.Establish(ctx, sess, user.ID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.signups.Add(ctx, 1)
	slog.InfoContext(ctx, "user signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login authenticates sess when the credentials match. On failure sess is
// left as it was.
func (s *authService) Login(ctx context.Context, sess *session.Session, req *models.LoginRequest) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.store.Users().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unknown_user")))
			return nil, models.ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, err
	}

	if !user.Authenticate(req.Password) {
		s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "wrong_password")))
		slog.InfoContext(ctx, "login rejected", "username", req.Username)
		return nil, models.ErrInvalidCredentials
	}

	if err := s.withRecipes(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sessions.Establish(ctx, sess, user.ID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user, nil
}

// Logout clears an authenticated session. Logging out without one is an
// authorization failure.
func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	ctx, span := tracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	userID, _ := sess.UserID()
	if err := s.sessions.Destroy(ctx, sess); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return models.ErrUnauthorized
		}
		span.RecordError(err)
		return err
	}

	slog.InfoContext(ctx, "user logged out", "user_id", userID)
	return nil
}

// CurrentUser returns the user behind sess together with their recipes.
func (s *authService) CurrentUser(ctx context.Context, sess *session.Session) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.CurrentUser")
	defer span.End()

	user, err := s.requireUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := s.withRecipes(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user behind sess, their recipes with them, and
// ends the session.
func (s *authService) DeleteAccount(ctx context.Context, sess *session.Session) error {
	ctx, span := tracer.Start(ctx, "AuthService.DeleteAccount")
	defer span.End()

	user, err := s.requireUser(ctx, sess)
	if err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		return tx.Users().Delete(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.heal(ctx, sess)
			return models.ErrUnauthorized
		}
		span.RecordError(err)
		return err
	}

	if err := s.sessions.Destroy(ctx, sess); err != nil {
		span.RecordError(err)
		return err
	}

	slog.InfoContext(ctx, "account deleted", "user_id", user.ID)
	return nil
}

func (s *authService) withRecipes(ctx context.Context, user *models.User) error {
	recipes, err := s.store.Recipes().ListByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load recipes of user %d: %w", user.ID, err)
	}
	user.Recipes = recipes
	return nil
}
