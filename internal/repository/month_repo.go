package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/epeers/twrank/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MonthRepository persists the reference security's trading dates per month
type MonthRepository struct {
	pool *pgxpool.Pool
}

// NewMonthRepository creates a new MonthRepository
func NewMonthRepository(pool *pgxpool.Pool) *MonthRepository {
	return &MonthRepository{pool: pool}
}

func yearMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d%02d", year, int(month))
}

// GetMonth returns the stored trading dates of a month, most recent first.
// An unknown month yields an empty slice.
func (r *MonthRepository) GetMonth(ctx context.Context, year int, month time.Month) ([]models.TradingDate, error) {
	query := `
		SELECT trade_date
		FROM trading_month
		WHERE year_month = $1
		ORDER BY trade_date DESC
	`
	rows, err := r.pool.Query(ctx, query, yearMonth(year, month))
	if err != nil {
		return nil, fmt.Errorf("failed to query trading month: %w", err)
	}
	defer rows.Close()

	var dates []models.TradingDate
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan trade date: %w", err)
		}
		dates = append(dates, models.NewTradingDate(d))
	}
	return dates, rows.Err()
}

// StoreMonth replaces a month's trading dates in one transaction
func (r *MonthRepository) StoreMonth(ctx context.Context, year int, month time.Month, dates []models.TradingDate) error {
	key := yearMonth(year, month)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM trading_month WHERE year_month = $1`, key); err != nil {
		return fmt.Errorf("failed to clear trading month: %w", err)
	}

	query := `
		INSERT INTO trading_month (year_month, trade_date)
		VALUES ($1, $2)
		ON CONFLICT (year_month, trade_date) DO NOTHING
	`
	batch := &pgx.Batch{}
	for _, d := range dates {
		batch.Queue(query, key, d.Time())
	}

	br := tx.SendBatch(ctx, batch)
	for range dates {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to store trade date: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit trading month: %w", err)
	}
	return nil
}
