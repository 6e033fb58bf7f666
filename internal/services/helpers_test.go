package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/epeers/twrank/internal/cache"
	"github.com/epeers/twrank/internal/exchange"
	"github.com/epeers/twrank/internal/models"
)

// fakeMonths serves month trading dates from a fixed list and counts calls
type fakeMonths struct {
	mu    sync.Mutex
	dates map[string][]models.TradingDate // keyed by YYYYMM
	errs  map[string]error
	calls []string

	// failAll makes every month query fail, as with an unreachable upstream
	failAll error
}

func newFakeMonths(dates ...models.TradingDate) *fakeMonths {
	f := &fakeMonths{
		dates: make(map[string][]models.TradingDate),
		errs:  make(map[string]error),
	}
	for _, d := range dates {
		key := string(d)[:6]
		f.dates[key] = append(f.dates[key], d)
	}
	return f
}

func (f *fakeMonths) FetchMonthTradingDates(ctx context.Context, year int, month time.Month) ([]models.TradingDate, error) {
	key := fmt.Sprintf("%04d%02d", year, int(month))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)

	if f.failAll != nil {
		return nil, f.failAll
	}
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return append([]models.TradingDate(nil), f.dates[key]...), nil
}

func unreachableMonths() *fakeMonths {
	f := newFakeMonths()
	f.failAll = fmt.Errorf("month query: %w", exchange.ErrUpstreamUnavailable)
	return f
}

func (f *fakeMonths) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeSnapshots answers FetchSnapshot through a function and counts calls
type fakeSnapshots struct {
	mu    sync.Mutex
	fn    func(market models.Market, date models.TradingDate) (*models.MarketSnapshot, error)
	calls map[string]int
}

func newFakeSnapshots(fn func(market models.Market, date models.TradingDate) (*models.MarketSnapshot, error)) *fakeSnapshots {
	return &fakeSnapshots{fn: fn, calls: make(map[string]int)}
}

func (f *fakeSnapshots) FetchSnapshot(ctx context.Context, market models.Market, date models.TradingDate) (*models.MarketSnapshot, error) {
	f.mu.Lock()
	f.calls[string(market)+":"+string(date)]++
	f.mu.Unlock()
	return f.fn(market, date)
}

func (f *fakeSnapshots) callsFor(market models.Market, date models.TradingDate) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[string(market)+":"+string(date)]
}

// row is one (code, turnover, close) line of a fake report; a negative value means nil
type row struct {
	code     string
	turnover float64
	close    float64
}

func snapshot(market models.Market, date models.TradingDate, rows ...row) *models.MarketSnapshot {
	snap := &models.MarketSnapshot{Market: market, Date: date}
	for _, r := range rows {
		snap.Records = append(snap.Records, models.SecurityRecord{
			Code:     r.code,
			Name:     "name-" + r.code,
			Turnover: optional(r.turnover),
			Close:    optional(r.close),
			Market:   market,
		})
	}
	return snap
}

func optional(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}

func f64(v float64) *float64 {
	return &v
}

// weekdays lists every Monday-Friday from start to end inclusive
func weekdays(start, end string) []models.TradingDate {
	s, _ := time.Parse(models.DateLayout, start)
	e, _ := time.Parse(models.DateLayout, end)
	var out []models.TradingDate
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		out = append(out, models.NewTradingDate(d))
	}
	return out
}

func newTestRanking(months MonthSource, snaps SnapshotSource, requiredDays int, now time.Time) (*RankingService, *cache.CalendarCache) {
	calCache := cache.NewCalendarCache()
	calendarSvc := NewCalendarService(months, calCache, requiredDays, DefaultMaxMonths)
	aggregationSvc := NewAggregationService(snaps, nil)
	return NewRankingServiceWithClock(calendarSvc, aggregationSvc, calCache, DefaultMaxLookbackDays, func() time.Time { return now }), calCache
}
