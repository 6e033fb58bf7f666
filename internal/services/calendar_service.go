package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/twrank/internal/cache"
	"github.com/epeers/twrank/internal/models"
	"github.com/epeers/twrank/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrNoCalendarAvailable means no dates were found and at least one month query failed,
// so the upstream, not the date, is the likely cause
var ErrNoCalendarAvailable = errors.New("no trading calendar available")

const (
	DefaultRequiredDays = 250
	DefaultMaxMonths    = 18
)

// CalendarService reconstructs the trading calendar from the reference security's
// month-by-month trade history. This assumes the reference security traded on
// every exchange trading day; a suspension would show up as a missing date.
type CalendarService struct {
	months       MonthSource
	cache        *cache.CalendarCache
	requiredDays int
	maxMonths    int
	group        singleflight.Group
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(months MonthSource, calCache *cache.CalendarCache, requiredDays, maxMonths int) *CalendarService {
	if requiredDays <= 0 {
		requiredDays = DefaultRequiredDays
	}
	if maxMonths <= 0 {
		maxMonths = DefaultMaxMonths
	}
	return &CalendarService{
		months:       months,
		cache:        calCache,
		requiredDays: requiredDays,
		maxMonths:    maxMonths,
	}
}

// Build walks back month by month from the target's month until requiredDays distinct
// trading dates on or before target are known, or maxMonths months were queried.
// Spacing between month queries is the MonthSource's concern. Finding no dates is
// ErrNotATradingDate when every month answered, ErrNoCalendarAvailable otherwise.
func (s *CalendarService) Build(ctx context.Context, target models.TradingDate) (models.TradingCalendar, error) {
	defer TrackTime("CalendarService.Build", time.Now())

	t := target.Time()
	year, month := t.Year(), t.Month()

	seen := make(map[models.TradingDate]struct{}, s.requiredDays)
	var dates []models.TradingDate
	failed := 0

	for step := 0; step < s.maxMonths && len(seen) < s.requiredDays; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		monthDates, err := s.months.FetchMonthTradingDates(ctx, year, month)
		if err != nil {
			// An unreachable month counts as empty; the step bound guarantees termination
			failed++
			log.Warnf("calendar: month %04d-%02d unavailable: %v", year, int(month), err)
		}

		for _, d := range monthDates {
			if d > target {
				continue
			}
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}

		year, month = util.PreviousMonth(year, month)
	}

	cal := models.NewTradingCalendar(dates, s.requiredDays)
	if len(cal) == 0 {
		if failed > 0 {
			return nil, fmt.Errorf("%w: nothing on or before %s within %d months, %d month queries failed",
				ErrNoCalendarAvailable, target, s.maxMonths, failed)
		}
		return nil, fmt.Errorf("%w: no trading dates on or before %s within %d months", ErrNotATradingDate, target, s.maxMonths)
	}

	log.Debugf("calendar for %s: %d days, %s..%s", target, len(cal), cal[len(cal)-1], cal[0])
	return cal, nil
}

// BuildCached returns the cached calendar for target, building and caching it on a miss.
// Concurrent misses for the same target share one build. The shared build does not
// inherit any caller's cancellation; a cancelled caller stops waiting and the build
// still completes for the others.
func (s *CalendarService) BuildCached(ctx context.Context, target models.TradingDate) (models.TradingCalendar, error) {
	cal, ok := s.cache.Get(target)
	if ok {
		log.Debugf("calendar cache hit for %s", target)
	} else {
		buildCtx := context.WithoutCancel(ctx)
		ch := s.group.DoChan(string(target), func() (interface{}, error) {
			cal, err := s.Build(buildCtx, target)
			if err != nil {
				return nil, err
			}
			s.cache.Set(target, cal)
			return cal, nil
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return nil, res.Err
			}
			cal = res.Val.(models.TradingCalendar)
		}
	}

	if len(cal) < s.requiredDays {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnCalendarShort,
			Message: fmt.Sprintf("calendar for %s has %d of %d trading days", target, len(cal), s.requiredDays),
		})
	}
	return cal, nil
}
