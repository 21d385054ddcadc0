package repository

import (
	"context"
	"ctchen222/Recipe-Box/internal/api/models"
	"ctchen222/Recipe-Box/internal/db"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RecipeRepository defines the interface for recipe data operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Recipe, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type sqlRecipeRepository struct {
	q sqlx.ExtContext
}

// NewRecipeRepository creates a RecipeRepository on a database or transaction.
func NewRecipeRepository(q sqlx.ExtContext) RecipeRepository {
	return &sqlRecipeRepository{q: q}
}

const selectRecipe = `SELECT id, title, instructions, minutes_to_complete, user_id FROM recipe`

// Create inserts recipe and sets its ID. A missing owner is reported as
// ErrNotFound; rows the schema rejects are reported as ErrValidation.
func (r *sqlRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	ctx, span := tracer.Start(ctx, "RecipeRepository.Create", trace.WithAttributes(
		attribute.Int64("user.id", recipe.UserID),
	))
	defer span.End()

	query := r.q.Rebind(`INSERT INTO recipe (title, instructions, minutes_to_complete, user_id) VALUES (?, ?, ?, ?) RETURNING id`)
	err := r.q.QueryRowxContext(ctx, query, nullIfEmpty(recipe.Title), recipe.Instructions, recipe.MinutesToComplete, recipe.UserID).Scan(&recipe.ID)
	if err == nil {
		return nil
	}

	span.RecordError(err)
	switch db.Classify(err) {
	case db.ConstraintForeignKey:
		return fmt.Errorf("owner of recipe, user %d: %w", recipe.UserID, models.ErrNotFound)
	case db.ConstraintNotNull, db.ConstraintCheck:
		return fmt.Errorf("failed to create recipe: %w: %v", models.ErrValidation, err)
	}
	return fmt.Errorf("failed to create recipe: %w", err)
}

// GetByID retrieves a recipe by primary key.
func (r *sqlRecipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	ctx, span := tracer.Start(ctx, "RecipeRepository.GetByID")
	defer span.End()

	var recipe models.Recipe
	err := sqlx.GetContext(ctx, r.q, &recipe, r.q.Rebind(selectRecipe+` WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("recipe %d: %w", id, models.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// ListByUser returns the recipes of userID in insertion order.
func (r *sqlRecipeRepository) ListByUser(ctx context.Context, userID int64) ([]models.Recipe, error) {
	ctx, span := tracer.Start(ctx, "RecipeRepository.ListByUser", trace.WithAttributes(
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	recipes := []models.Recipe{}
	err := sqlx.SelectContext(ctx, r.q, &recipes, r.q.Rebind(selectRecipe+` WHERE user_id = ? ORDER BY id`), userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Delete removes a single recipe.
func (r *sqlRecipeRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "RecipeRepository.Delete")
	defer span.End()

	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM recipe WHERE id = ?`), id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recipe %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeleteAll removes every recipe.
func (r *sqlRecipeRepository) DeleteAll(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "RecipeRepository.DeleteAll")
	defer span.End()

	if _, err := r.q.ExecContext(ctx, `DELETE FROM recipe`); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete recipes: %w", err)
	}
	return nil
}

// nullIfEmpty stores an empty string as NULL so the NOT NULL constraint
// catches recipes that skipped validation.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
