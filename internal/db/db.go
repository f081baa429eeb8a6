// Package db provides PostgreSQL storage for the layout run log.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DBPool is the subset of pgxpool.Pool the store uses, so tests can substitute pgxmock.
type DBPool interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool DBPool
	log  *zap.Logger
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string, logger *zap.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db, err := New(ctx, pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// New wraps an existing pool and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*DB, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{pool: pool, log: logger.Named("db")}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const createLayoutRunsSQL = `
CREATE TABLE IF NOT EXISTS layout_runs (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	variant TEXT NOT NULL,
	source TEXT NOT NULL,
	page_budget_mm DOUBLE PRECISION NOT NULL,
	total_content_mm DOUBLE PRECISION NOT NULL,
	slack_mm DOUBLE PRECISION NOT NULL,
	spacing_mm INTEGER NOT NULL,
	distribute_slack BOOLEAN NOT NULL,
	tight BOOLEAN NOT NULL,
	section_count INTEGER NOT NULL,
	sections JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the layout_runs table when it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, createLayoutRunsSQL); err != nil {
		return fmt.Errorf("failed to create layout_runs table: %w", err)
	}
	return nil
}
