package main

import (
	"context"
	"testing"

	"ctchen222/Recipe-Box/internal/api/repository"
	"ctchen222/Recipe-Box/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IsRepeatable(t *testing.T) {
	ctx := context.Background()
	pool, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	store := repository.NewStore(pool)

	require.NoError(t, seed(ctx, store))
	require.NoError(t, seed(ctx, store))

	for _, su := range seedData() {
		user, err := store.Users().GetByUsername(ctx, su.username)
		require.NoError(t, err)
		assert.True(t, user.Authenticate(seedPassword))

		recipes, err := store.Recipes().ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, su.title, recipes[0].Title)
	}

	var users int
	require.NoError(t, pool.GetContext(ctx, &users, `SELECT COUNT(*) FROM "user"`))
	assert.Equal(t, 3, users)
}
