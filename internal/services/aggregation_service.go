package services

import (
	"context"
	"fmt"
	"time"

	"github.com/epeers/twrank/internal/cache"
	"github.com/epeers/twrank/internal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AggregationService joins a market's target-date snapshot with its snapshots at
// each resolved offset and computes the closing-price drift per security
type AggregationService struct {
	source    SnapshotSource
	snapshots *cache.SnapshotCache
}

// NewAggregationService creates a new AggregationService. snapshots may be nil.
func NewAggregationService(source SnapshotSource, snapshots *cache.SnapshotCache) *AggregationService {
	return &AggregationService{
		source:    source,
		snapshots: snapshots,
	}
}

// fetchResult is one (offset, date) fetch. offset 0 is the target date.
type fetchResult struct {
	offset int
	date   models.TradingDate
	snap   *models.MarketSnapshot
	err    error
}

// Aggregate returns one record per security in the target-date snapshot, in the
// snapshot's order. A failed historical fetch nulls that offset's drift for every
// record; a failed target-date fetch yields an empty table.
func (s *AggregationService) Aggregate(ctx context.Context, periods *models.PeriodMap, market models.Market) []models.AggregatedRecord {
	defer TrackTime(fmt.Sprintf("AggregationService.Aggregate(%s)", market), time.Now())

	jobs := []fetchResult{{offset: 0, date: periods.Today}}
	for _, k := range periods.Available() {
		d, _ := periods.DateFor(k)
		jobs = append(jobs, fetchResult{offset: k, date: d})
	}

	// Every fetch waits on the host's rate limiter, so fanning out keeps the spacing.
	// Errors stay in fetchResult: a failed date only nulls its own column, so one
	// failure must not cancel the sibling fetches the way errgroup.WithContext would.
	var g errgroup.Group
	for i := range jobs {
		g.Go(func() error {
			jobs[i].snap, jobs[i].err = s.fetch(ctx, market, jobs[i].date)
			return nil
		})
	}
	_ = g.Wait()

	today := jobs[0]
	if today.err != nil {
		log.Warnf("aggregate %s: no snapshot for %s: %v", market, today.date, today.err)
		AddWarning(ctx, models.Warning{
			Code:    models.WarnTodaySnapshotMissing,
			Message: fmt.Sprintf("%s snapshot for %s unavailable: %v", market, today.date, today.err),
		})
		return []models.AggregatedRecord{}
	}

	historical := make(map[int]map[string]*float64, len(jobs)-1)
	for _, job := range jobs[1:] {
		if job.err != nil {
			log.Warnf("aggregate %s: %d-day snapshot (%s) skipped: %v", market, job.offset, job.date, job.err)
			AddWarning(ctx, models.Warning{
				Code:    models.WarnHistoricalSnapshot,
				Message: fmt.Sprintf("%s %d-day snapshot for %s unavailable: %v", market, job.offset, job.date, job.err),
			})
			continue
		}
		historical[job.offset] = job.snap.Closes()
	}

	records := make([]models.AggregatedRecord, 0, len(today.snap.Records))
	for _, r := range today.snap.Records {
		rec := models.AggregatedRecord{
			Code:     r.Code,
			Name:     r.Name,
			Turnover: r.Turnover,
			Close:    r.Close,
			Market:   r.Market,
		}
		for k, closes := range historical {
			// Codes missing from the older report (new listings) keep a nil drift
			if hist, ok := closes[r.Code]; ok {
				rec.Drifts.Set(k, Drift(r.Close, hist))
			}
		}
		records = append(records, rec)
	}

	return records
}

func (s *AggregationService) fetch(ctx context.Context, market models.Market, date models.TradingDate) (*models.MarketSnapshot, error) {
	if snap, ok := s.snapshots.Get(market, date); ok {
		return snap, nil
	}

	snap, err := s.source.FetchSnapshot(ctx, market, date)
	if err != nil {
		return nil, err
	}

	s.snapshots.Set(snap)
	return snap, nil
}

// Drift is the percentage change from historical to current close, rounded to
// two decimals. It is nil when either price is unknown or the historical close is zero.
func Drift(current, historical *float64) *float64 {
	if current == nil || historical == nil || *historical == 0 {
		return nil
	}

	cur := decimal.NewFromFloat(*current)
	hist := decimal.NewFromFloat(*historical)
	v, _ := cur.Sub(hist).Div(hist).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return &v
}
