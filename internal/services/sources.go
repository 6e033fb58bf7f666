package services

import (
	"context"
	"time"

	"github.com/epeers/twrank/internal/models"
)

// SnapshotSource fetches one market's daily report. *exchange.Client implements it.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context, market models.Market, date models.TradingDate) (*models.MarketSnapshot, error)
}

// MonthSource lists the reference security's trading dates for one month, most recent first.
// *exchange.Client and *CachedMonthSource implement it.
type MonthSource interface {
	FetchMonthTradingDates(ctx context.Context, year int, month time.Month) ([]models.TradingDate, error)
}

// MonthStore persists month trading-date lists. *repository.MonthRepository implements it.
type MonthStore interface {
	GetMonth(ctx context.Context, year int, month time.Month) ([]models.TradingDate, error)
	StoreMonth(ctx context.Context, year int, month time.Month, dates []models.TradingDate) error
}
