package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("session")

const keyPrefix = "session:"

type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-based Store. Each session is a plain string
// key holding the user id, expiring with the session.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

func (s *redisStore) Get(ctx context.Context, token string) (int64, error) {
	ctx, span := tracer.Start(ctx, "RedisStore.Get")
	defer span.End()

	userID, err := s.rdb.Get(ctx, sessionKey(token)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		span.RecordError(err)
		return 0, fmt.Errorf("failed to read session: %w", err)
	}
	return userID, nil
}

func (s *redisStore) Set(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	ctx, span := tracer.Start(ctx, "RedisStore.Set")
	defer span.End()

	if err := s.rdb.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "RedisStore.Delete")
	defer span.End()

	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
