package cmd

import (
	"context"

	"github.com/epeers/twrank/config"
	"github.com/epeers/twrank/internal/cache"
	"github.com/epeers/twrank/internal/database"
	"github.com/epeers/twrank/internal/exchange"
	"github.com/epeers/twrank/internal/repository"
	"github.com/epeers/twrank/internal/services"
	log "github.com/sirupsen/logrus"
)

// app holds the wired service graph plus whatever needs closing on exit
type app struct {
	rankingSvc *services.RankingService
	db         *database.DB
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	// Initialize exchange client
	client := exchange.NewClient(exchange.Options{
		ListedBaseURL:   cfg.ListedBaseURL,
		OTCBaseURL:      cfg.OTCBaseURL,
		ReferenceStock:  cfg.ReferenceStock,
		RequestInterval: cfg.RequestInterval,
		Timeout:         cfg.RequestTimeout,
		InsecureTLS:     cfg.InsecureTLS,
	})

	a := &app{}

	// Month history goes through Postgres when configured
	var months services.MonthSource = client
	if cfg.PGURL != "" {
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			return nil, err
		}
		a.db = db
		months = services.NewCachedMonthSource(repository.NewMonthRepository(db.Pool), client)
	} else {
		log.Info("PG_URL not set, month store disabled")
	}

	// Initialize caches
	calCache := cache.NewCalendarCache()
	snapCache := cache.NewSnapshotCache(cfg.SnapshotCacheTTL)

	// Initialize services
	calendarSvc := services.NewCalendarService(months, calCache, cfg.RequiredDays, cfg.MaxLookbackMonths)
	aggregationSvc := services.NewAggregationService(client, snapCache)
	a.rankingSvc = services.NewRankingService(calendarSvc, aggregationSvc, calCache, cfg.MaxLookbackDays)

	return a, nil
}

func (a *app) Close() {
	a.db.Close()
}
