package services

import (
	"context"
	"time"

	"github.com/epeers/twrank/internal/models"
	"github.com/epeers/twrank/internal/util"
	log "github.com/sirupsen/logrus"
)

// CachedMonthSource puts a persistent store in front of the exchange for months that
// are over. The current month is always fetched upstream since it is still growing.
type CachedMonthSource struct {
	store    MonthStore
	upstream MonthSource
	now      func() time.Time
}

// NewCachedMonthSource creates a new CachedMonthSource
func NewCachedMonthSource(store MonthStore, upstream MonthSource) *CachedMonthSource {
	return &CachedMonthSource{
		store:    store,
		upstream: upstream,
		now:      time.Now,
	}
}

// FetchMonthTradingDates implements MonthSource
func (s *CachedMonthSource) FetchMonthTradingDates(ctx context.Context, year int, month time.Month) ([]models.TradingDate, error) {
	complete := util.MonthComplete(year, month, util.TodayInTaipei(s.now()))

	if complete {
		dates, err := s.store.GetMonth(ctx, year, month)
		if err != nil {
			log.Warnf("month store read %04d-%02d failed: %v", year, int(month), err)
		} else if len(dates) > 0 {
			return dates, nil
		}
	}

	dates, err := s.upstream.FetchMonthTradingDates(ctx, year, month)
	if err != nil {
		return nil, err
	}

	// Empty months may be a transient upstream hiccup, so only real data is kept
	if complete && len(dates) > 0 {
		if err := s.store.StoreMonth(ctx, year, month, dates); err != nil {
			log.Warnf("month store write %04d-%02d failed: %v", year, int(month), err)
		}
	}

	return dates, nil
}
