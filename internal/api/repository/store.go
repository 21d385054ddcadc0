package repository

import (
	"context"

	"ctchen222/Recipe-Box/internal/db"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api.repository")

// Store hands out repositories that share one database handle. Inside
// WithTx every repository runs on the same transaction.
type Store interface {
	Users() UserRepository
	Recipes() RecipeRepository
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type sqlStore struct {
	pool *sqlx.DB
	q    sqlx.ExtContext
}

// NewStore creates a Store backed by pool.
func NewStore(pool *sqlx.DB) Store {
	return &sqlStore{pool: pool, q: pool}
}

func (s *sqlStore) Users() UserRepository {
	return NewUserRepository(s.q)
}

func (s *sqlStore) Recipes() RecipeRepository {
	return NewRecipeRepository(s.q)
}

// WithTx runs fn in a transaction. A Store that is already transactional
// runs fn in place.
func (s *sqlStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if _, inTx := s.q.(*sqlx.Tx); inTx {
		return fn(s)
	}

	ctx, span := tracer.Start(ctx, "Store.WithTx")
	defer span.End()

	return db.WithTx(ctx, s.pool, func(tx *sqlx.Tx) error {
		return fn(&sqlStore{pool: s.pool, q: tx})
	})
}
