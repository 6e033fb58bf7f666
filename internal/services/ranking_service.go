package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/epeers/twrank/internal/cache"
	"github.com/epeers/twrank/internal/models"
	"github.com/epeers/twrank/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoRecentTradingDate means no day in the look-back window produced a ranking
	ErrNoRecentTradingDate = errors.New("no recent trading date with data")
	// ErrInvalidTopN rejects non-positive result sizes
	ErrInvalidTopN = errors.New("top_n must be positive")
)

// DefaultMaxLookbackDays bounds the search for the latest trading date
const DefaultMaxLookbackDays = 10

// RankingService runs the calendar → periods → aggregation pipeline and ranks the result
type RankingService struct {
	calendarSvc    *CalendarService
	aggregationSvc *AggregationService
	calCache       *cache.CalendarCache
	maxLookback    int
	now            func() time.Time
}

// NewRankingService creates a new RankingService
func NewRankingService(calendarSvc *CalendarService, aggregationSvc *AggregationService, calCache *cache.CalendarCache, maxLookback int) *RankingService {
	return NewRankingServiceWithClock(calendarSvc, aggregationSvc, calCache, maxLookback, time.Now)
}

// NewRankingServiceWithClock creates a RankingService with a custom clock (for testing)
func NewRankingServiceWithClock(calendarSvc *CalendarService, aggregationSvc *AggregationService, calCache *cache.CalendarCache, maxLookback int, now func() time.Time) *RankingService {
	if maxLookback <= 0 {
		maxLookback = DefaultMaxLookbackDays
	}
	return &RankingService{
		calendarSvc:    calendarSvc,
		aggregationSvc: aggregationSvc,
		calCache:       calCache,
		maxLookback:    maxLookback,
		now:            now,
	}
}

// GetRanking returns the topN securities by turnover on date, with drift against each offset
func (s *RankingService) GetRanking(ctx context.Context, date models.TradingDate, topN int, filter models.MarketFilter) ([]models.AggregatedRecord, error) {
	defer TrackTime("RankingService.GetRanking", time.Now())

	if topN <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}

	// The exchange has nothing to say about dates that have not happened yet
	if today := util.TodayInTaipei(s.now()); date > today {
		return nil, fmt.Errorf("%w: %s is after today (%s)", ErrNotATradingDate, date, today)
	}

	cal, err := s.calendarSvc.BuildCached(ctx, date)
	if err != nil {
		return nil, err
	}

	periods, err := ResolvePeriods(cal, date, models.Offsets)
	if err != nil {
		return nil, err
	}

	for _, k := range periods.Offsets {
		if _, ok := periods.DateFor(k); !ok {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnOffsetUnavailable,
				Message: fmt.Sprintf("%d-day offset is beyond the %d-day calendar", k, len(cal)),
			})
		}
	}

	markets := filter.Markets()
	tables := make([][]models.AggregatedRecord, len(markets))

	// Aggregate degrades instead of failing, so no goroutine returns an error
	var g errgroup.Group
	for i, market := range markets {
		g.Go(func() error {
			tables[i] = s.aggregationSvc.Aggregate(ctx, periods, market)
			return nil
		})
	}
	_ = g.Wait()

	var combined []models.AggregatedRecord
	for _, t := range tables {
		combined = append(combined, t...)
	}

	RankByTurnover(combined)
	if len(combined) > topN {
		combined = combined[:topN]
	}
	if combined == nil {
		combined = []models.AggregatedRecord{}
	}

	return combined, nil
}

// RankByTurnover sorts records by turnover, highest first. Unknown turnover sorts
// last and ties keep their original order.
func RankByTurnover(records []models.AggregatedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Turnover, records[j].Turnover
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a > *b
	})
}

// FindLatest walks back one calendar day at a time from today (exchange time) and
// returns the first date whose ranking is non-empty
func (s *RankingService) FindLatest(ctx context.Context, filter models.MarketFilter, topN, maxLookback int) ([]models.AggregatedRecord, models.TradingDate, error) {
	if topN <= 0 {
		return nil, "", fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}
	if maxLookback <= 0 {
		maxLookback = s.maxLookback
	}

	today := util.TodayInTaipei(s.now())

	for i := 0; i < maxLookback; i++ {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		date := util.DaysBefore(today, i)

		// Warnings from failed attempts are dropped; only the winning date's are kept
		attemptCtx, wc := NewWarningContext(ctx)
		records, err := s.GetRanking(attemptCtx, date, topN, filter)
		if err != nil {
			log.Infof("find latest: %s unusable: %v", date, err)
			continue
		}
		if len(records) == 0 {
			log.Infof("find latest: %s has no data", date)
			continue
		}

		AddWarnings(ctx, wc.GetWarnings()...)
		log.Infof("find latest: using %s", date)
		return records, date, nil
	}

	return nil, "", fmt.Errorf("%w: checked %d days back from %s", ErrNoRecentTradingDate, maxLookback, today)
}

// Health reports whether a calendar is cached and for which date
func (s *RankingService) Health() models.HealthStatus {
	status := models.HealthStatus{Status: "ok"}

	loaded, target := s.calCache.Status()
	status.CacheLoaded = loaded
	if loaded {
		status.CachedDate = &target
	}
	return status
}
