package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(50) NOT NULL UNIQUE CHECK (length(username) BETWEEN 1 AND 50),
		password_hash VARCHAR(255) NOT NULL CHECK (length(password_hash) > 0),
		bio TEXT NOT NULL DEFAULT '',
		image_url VARCHAR(255) NOT NULL DEFAULT 'https://cdn.pixabay.com/photo/2017/11/10/05/24/screenshot_4.jpg'
	)`,
	`CREATE TABLE IF NOT EXISTS recipe (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(100) NOT NULL CHECK (length(title) BETWEEN 1 AND 100),
		instructions TEXT NOT NULL CHECK (length(instructions) >= 50),
		minutes_to_complete INTEGER CHECK (minutes_to_complete IS NULL OR minutes_to_complete >= 1),
		user_id INTEGER NOT NULL REFERENCES "user"(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_user_id ON recipe(user_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE CHECK (char_length(username) BETWEEN 1 AND 50),
		password_hash VARCHAR(255) NOT NULL CHECK (char_length(password_hash) > 0),
		bio TEXT NOT NULL DEFAULT '',
		image_url VARCHAR(255) NOT NULL DEFAULT 'https://cdn.pixabay.com/photo/2017/11/10/05/24/screenshot_4.jpg'
	)`,
	`CREATE TABLE IF NOT EXISTS recipe (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(100) NOT NULL CHECK (char_length(title) BETWEEN 1 AND 100),
		instructions TEXT NOT NULL CHECK (char_length(instructions) >= 50),
		minutes_to_complete INTEGER CHECK (minutes_to_complete IS NULL OR minutes_to_complete >= 1),
		user_id BIGINT NOT NULL REFERENCES "user"(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_user_id ON recipe(user_id)`,
}

// Open connects to the database, verifies the connection and makes sure the
// schema exists.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	start := time.Now()

	if driver == DriverSQLite {
		dsn = withPragma(dsn, "foreign_keys(1)")
	}

	pool, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	var schema []string
	switch driver {
	case DriverSQLite:
		// SQLite serializes writers anyway, and a single connection keeps
		// in-memory databases and per-connection pragmas alive.
		pool.SetMaxOpenConns(1)
		pool.SetConnMaxLifetime(0)
		schema = sqliteSchema
	case DriverPostgres:
		pool.SetMaxOpenConns(10)
		pool.SetMaxIdleConns(5)
		pool.SetConnMaxLifetime(30 * time.Minute)
		pool.SetConnMaxIdleTime(10 * time.Minute)
		schema = postgresSchema
	default:
		pool.Close()
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	slog.InfoContext(ctx, "database connection initialized and schema verified",
		"driver", driver,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return pool, nil
}

// withPragma adds a _pragma query parameter so the driver applies it to
// every connection it opens, not just the first.
func withPragma(dsn, pragma string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=" + pragma
}
