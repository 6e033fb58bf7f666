package services

import (
	"context"
	"sync"

	"github.com/epeers/twrank/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates the degradations of one ranking request: short
// calendars, unreachable offsets and reports that could not be fetched.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector, plus the
// collector itself so the caller can read it once the pipeline returns.
// A collector in a derived context shadows any collector further up.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

func collectorFrom(ctx context.Context) *WarningCollector {
	wc, _ := ctx.Value(warningContextKey{}).(*WarningCollector)
	return wc
}

// AddWarning records a warning on the collector in ctx; without one it is a no-op
func AddWarning(ctx context.Context, w models.Warning) {
	AddWarnings(ctx, w)
}

// AddWarnings records several warnings at once, keeping their order
func AddWarnings(ctx context.Context, ws ...models.Warning) {
	wc := collectorFrom(ctx)
	if wc == nil || len(ws) == 0 {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, ws...)
}

// GetWarnings returns a copy of the collected warnings, in the order they were added
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	return append([]models.Warning(nil), wc.warnings...)
}
