package main

import (
	"context"
	"ctchen222/Recipe-Box/internal/config"
	"ctchen222/Recipe-Box/internal/db"
	"ctchen222/Recipe-Box/internal/session"
	"ctchen222/Recipe-Box/internal/telemetry"
)

func initTelemetry(ctx context.Context, cfg *config.Config) (telemetry.ShutdownFunc, error) {
	return telemetry.InitOtel(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
}

func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Backend == config.SessionBackendMemory {
		return session.NewMemoryStore(), func() {}, nil
	}

	rdb, err := db.NewRedisClient(ctx, cfg.Session.RedisConn)
	if err != nil {
		return nil, nil, err
	}
	return session.NewRedisStore(rdb), func() { rdb.Close() }, nil
}
