// Package db provides a pgxpool-based connection pool with prepared statement
// registration and schema bootstrap for the postgres favorites backend.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/pokedex/internal/config"
)

// FavoritesTable holds one JSON id list per storage key.
const FavoritesTable = "favorites"

const schema = `
CREATE TABLE IF NOT EXISTS ` + FavoritesTable + ` (
	key        TEXT PRIMARY KEY,
	ids        JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool and ensures the schema.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	if cfg.DBPoolMaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	}
	if cfg.DBPoolMaxLife > 0 {
		poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// The favorites statements reference the table, so it must exist before
	// the first pooled connection prepares them.
	if err := ensureSchema(ctx, poolCfg.ConnConfig); err != nil {
		return nil, err
	}

	// Register prepared statements on every new connection
	poolCfg.AfterConnect = registerPreparedStatements

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// ensureSchema creates the favorites table over a single dedicated connection.
func ensureSchema(ctx context.Context, connCfg *pgx.ConnConfig) error {
	conn, err := pgx.ConnectConfig(ctx, connCfg.Copy())
	if err != nil {
		return fmt.Errorf("connect for schema: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// preparedStatements are registered by name on every pooled connection.
var preparedStatements = map[string]string{
	"health_check": "SELECT 1",

	"favorites_load": "SELECT ids FROM " + FavoritesTable + " WHERE key = $1",
	"favorites_save": "INSERT INTO " + FavoritesTable + " (key, ids) VALUES ($1, $2) " +
		"ON CONFLICT (key) DO UPDATE SET ids = EXCLUDED.ids, updated_at = NOW()",
}

// registerPreparedStatements registers all statements the favorites store uses.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range preparedStatements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
