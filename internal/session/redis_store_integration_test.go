//go:build integration

package session

import (
	"context"
	"testing"
	"time"

	"ctchen222/Recipe-Box/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	rdb, err := db.NewRedisClient(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	store := NewRedisStore(rdb)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Set(ctx, "tok", 42, time.Minute))
	id, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	ttl, err := rdb.TTL(ctx, "session:tok").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	m := NewManager(store, time.Minute)
	s := Anonymous()
	require.NoError(t, m.Establish(ctx, s, 7))
	loaded, err := m.Load(ctx, s.Token())
	require.NoError(t, err)
	uid, ok := loaded.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(7), uid)
}
