package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// DB wraps the connection pool
type DB struct {
	Pool *pgxpool.Pool
}

const schema = `
	CREATE TABLE IF NOT EXISTS trading_month (
		year_month CHAR(6) NOT NULL,
		trade_date DATE    NOT NULL,
		PRIMARY KEY (year_month, trade_date)
	)
`

// New connects to Postgres, verifies the connection and creates the schema if missing
func New(ctx context.Context, url string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Info("Connected to month store")
	return &DB{Pool: pool}, nil
}

// Close releases every pooled connection
func (db *DB) Close() {
	if db != nil && db.Pool != nil {
		db.Pool.Close()
	}
}
