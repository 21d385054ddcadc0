package repository

import (
	"context"
	"ctchen222/Recipe-Box/internal/api/models"
	"ctchen222/Recipe-Box/internal/db"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type sqlUserRepository struct {
	q sqlx.ExtContext
}

// NewUserRepository creates a UserRepository on a database or transaction.
func NewUserRepository(q sqlx.ExtContext) UserRepository {
	return &sqlUserRepository{q: q}
}

const selectUser = `SELECT id, username, password_hash, bio, image_url FROM "user"`

// Create inserts user and sets its ID. The user must already carry a
// password hash.
func (r *sqlUserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, span := tracer.Start(ctx, "UserRepository.Create")
	defer span.End()

	if !user.PasswordHash.IsSet() {
		return &models.FieldError{Field: "password", Kind: models.ErrMissingField, Message: "password is required"}
	}

	query := r.q.Rebind(`INSERT INTO "user" (username, password_hash, bio, image_url) VALUES (?, ?, ?, ?) RETURNING id`)
	err := r.q.QueryRowxContext(ctx, query, user.Username, user.PasswordHash, user.Bio, user.ImageURL).Scan(&user.ID)
	if err == nil {
		return nil
	}

	span.RecordError(err)
	switch db.Classify(err) {
	case db.ConstraintUnique:
		return fmt.Errorf("failed to create user %q: %w", user.Username, models.ErrDuplicateUsername)
	case db.ConstraintNotNull, db.ConstraintCheck:
		return fmt.Errorf("failed to create user: %w: %v", models.ErrValidation, err)
	}
	return fmt.Errorf("failed to create user: %w", err)
}

// GetByID retrieves a user by primary key.
func (r *sqlUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetByID")
	defer span.End()

	var user models.User
	err := sqlx.GetContext(ctx, r.q, &user, r.q.Rebind(selectUser+` WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// GetByUsername retrieves a user from the database by their username.
func (r *sqlUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetByUsername")
	defer span.End()

	var user models.User
	err := sqlx.GetContext(ctx, r.q, &user, r.q.Rebind(selectUser+` WHERE username = ?`), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// ExistsByUsername reports whether username is taken. The answer is only
// advisory; the unique constraint decides at insert time.
func (r *sqlUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.ExistsByUsername")
	defer span.End()

	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists, r.q.Rebind(`SELECT EXISTS (SELECT 1 FROM "user" WHERE username = ?)`), username)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// Delete removes a user. The user's recipes go with it through the
// ON DELETE CASCADE foreign key.
func (r *sqlUserRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "UserRepository.Delete")
	defer span.End()

	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM "user" WHERE id = ?`), id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeleteAll removes every user and, by cascade, every recipe.
func (r *sqlUserRepository) DeleteAll(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "UserRepository.DeleteAll")
	defer span.End()

	if _, err := r.q.ExecContext(ctx, `DELETE FROM "user"`); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}
