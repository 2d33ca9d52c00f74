package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens a small pool. The roster is read once at startup, so
// the pool is sized for the seed tool and readiness checks, not for traffic.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	cfg.MaxConns = 4
	cfg.MinConns = 0
	cfg.HealthCheckPeriod = time.Minute
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// Schema creates the doctors table read by the postgres roster source.
const Schema = `
CREATE TABLE IF NOT EXISTS doctors (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	specialty    TEXT NOT NULL,
	availability TEXT[] NOT NULL DEFAULT '{}',
	rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
	position     INTEGER NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`
