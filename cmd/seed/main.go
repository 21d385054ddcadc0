// Command seed resets the database to a small set of demo users and recipes.
package main

import (
	"context"
	"ctchen222/Recipe-Box/internal/api/models"
	"ctchen222/Recipe-Box/internal/api/repository"
	"ctchen222/Recipe-Box/internal/config"
	"ctchen222/Recipe-Box/internal/db"
	"ctchen222/Recipe-Box/internal/logger"
	"fmt"
	"log"
	"log/slog"
)

const seedPassword = "password123"

type seedUser struct {
	username     string
	bio          string
	title        string
	instructions string
	minutes      int
}

func seedData() []seedUser {
	return []seedUser{
		{
			username:     "alice",
			bio:          "Weekend baker and pancake enthusiast.",
			title:        "Pancakes",
			instructions: "Whisk flour, milk, eggs and a pinch of sugar, then fry ladlefuls in a buttered pan until golden on both sides.",
			minutes:      20,
		},
		{
			username:     "bob",
			bio:          "Greens with everything.",
			title:        "Salad",
			instructions: "Wash and tear the lettuce, slice tomatoes and cucumber, then toss everything with olive oil, lemon and salt.",
			minutes:      10,
		},
		{
			username:     "charlie",
			bio:          "Pasta every night.",
			title:        "Spaghetti",
			instructions: "Boil the spaghetti in salted water, simmer a tomato and garlic sauce, then combine with grated parmesan on top.",
			minutes:      30,
		},
	}
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	pool, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer pool.Close()

	if err := seed(ctx, repository.NewStore(pool)); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	slog.Info("seeding done")
}

func seed(ctx context.Context, store repository.Store) error {
	return store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Recipes().DeleteAll(ctx); err != nil {
			return err
		}
		if err := tx.Users().DeleteAll(ctx); err != nil {
			return err
		}

		for _, su := range seedData() {
			user, err := models.NewUser(su.username, su.bio, "")
			if err != nil {
				return err
			}
			if err := user.SetPassword(seedPassword); err != nil {
				return err
			}
			if err := tx.Users().Create(ctx, user); err != nil {
				return fmt.Errorf("failed to create user %s: %w", su.username, err)
			}

			minutes := su.minutes
			recipe, err := models.NewRecipe(user.ID, su.title, su.instructions, &minutes)
			if err != nil {
				return err
			}
			if err := tx.Recipes().Create(ctx, recipe); err != nil {
				return fmt.Errorf("failed to create recipe %q: %w", su.title, err)
			}
			slog.InfoContext(ctx, "seeded user", "username", user.Username, "recipe", recipe.Title)
		}
		return nil
	})
}
