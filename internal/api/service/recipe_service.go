package service

import (
	"context"
	"ctchen222/Recipe-Box/internal/api/models"
	"ctchen222/Recipe-Box/internal/api/repository"
	"ctchen222/Recipe-Box/internal/session"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// RecipeService defines the recipe operations of an authenticated user.
type RecipeService interface {
	ListRecipes(ctx context.Context, sess *session.Session) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, sess *session.Session, req *models.CreateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, sess *session.Session, recipeID int64) error
}

type recipeService struct {
	gate
	created metric.Int64Counter
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(store repository.Store, sessions *session.Manager) RecipeService {
	return &recipeService{
		gate:    gate{store: store, sessions: sessions},
		created: counter("recipebox.recipes.created", "Recipes created"),
	}
}

// ListRecipes returns the caller's recipes, oldest first.
func (s *recipeService) ListRecipes(ctx context.Context, sess *session.Session) ([]models.Recipe, error) {
	ctx, span := tracer.Start(ctx, "RecipeService.ListRecipes")
	defer span.End()

	user, err := s.requireUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.store.Recipes().ListByUser(ctx, user.ID)
}

// CreateRecipe validates and stores a recipe owned by the caller.
func (s *recipeService) CreateRecipe(ctx context.Context, sess *session.Session, req *models.CreateRecipeRequest) (*models.Recipe, error) {
	ctx, span := tracer.Start(ctx, "RecipeService.CreateRecipe")
	defer span.End()

	user, err := s.requireUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))

	minutes, err := req.Minutes()
	if err != nil {
		return nil, err
	}
	recipe, err := models.NewRecipe(user.ID, req.Title, req.Instructions, minutes)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		return tx.Recipes().Create(ctx, recipe)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.created.Add(ctx, 1)
	slog.InfoContext(ctx, "recipe created", "recipe_id", recipe.ID, "user_id", user.ID)
	return recipe, nil
}

// DeleteRecipe removes one of the caller's recipes. Recipes of other users
// are reported as not found.
func (s *recipeService) DeleteRecipe(ctx context.Context, sess *session.Session, recipeID int64) error {
	ctx, span := tracer.Start(ctx, "RecipeService.DeleteRecipe", trace.WithAttributes(
		attribute.Int64("recipe.id", recipeID),
	))
	defer span.End()

	user, err := s.requireUser(ctx, sess)
	if err != nil {
		return err
	}

	return s.store.WithTx(ctx, func(tx repository.Store) error {
		recipe, err := tx.Recipes().GetByID(ctx, recipeID)
		if err != nil {
			return err
		}
		if recipe.UserID != user.ID {
			return fmt.Errorf("recipe %d: %w", recipeID, models.ErrNotFound)
		}
		return tx.Recipes().Delete(ctx, recipeID)
	})
}
