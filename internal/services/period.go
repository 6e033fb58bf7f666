package services

import (
	"errors"
	"fmt"

	"github.com/epeers/twrank/internal/models"
)

// ErrNotATradingDate means the target date is absent from the trading calendar
var ErrNotATradingDate = errors.New("not a trading date")

// ResolvePeriods maps target and each trading-day offset to a concrete date.
// The calendar is most recent first, so offset k is the entry k positions after
// target. Offsets past the end of the calendar resolve to nil.
func ResolvePeriods(cal models.TradingCalendar, target models.TradingDate, offsets []int) (*models.PeriodMap, error) {
	idx := cal.IndexOf(target)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotATradingDate, target)
	}

	periods := &models.PeriodMap{
		Today:   target,
		Offsets: append([]int(nil), offsets...),
		Dates:   make(map[int]*models.TradingDate, len(offsets)),
	}

	for _, k := range offsets {
		i := idx + k
		if k <= 0 || i >= len(cal) {
			periods.Dates[k] = nil
			continue
		}
		d := cal[i]
		periods.Dates[k] = &d
	}

	return periods, nil
}
