package cache

import (
	"sync"

	"github.com/epeers/twrank/internal/models"
)

// CalendarCache is a single-slot memo of the most recently built trading calendar.
// A request for any other target date replaces the slot wholesale.
type CalendarCache struct {
	mu     sync.RWMutex
	target models.TradingDate
	dates  models.TradingCalendar
	loaded bool
}

// NewCalendarCache creates an empty calendar cache
func NewCalendarCache() *CalendarCache {
	return &CalendarCache{}
}

// Get returns a copy of the cached calendar if it was built for exactly this target date
func (c *CalendarCache) Get(target models.TradingDate) (models.TradingCalendar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded || c.target != target {
		return nil, false
	}
	dates := make(models.TradingCalendar, len(c.dates))
	copy(dates, c.dates)
	return dates, true
}

// Set replaces the slot. Last writer wins.
func (c *CalendarCache) Set(target models.TradingDate, cal models.TradingCalendar) {
	// Copy so later edits by the caller never reach readers
	dates := make(models.TradingCalendar, len(cal))
	copy(dates, cal)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.target = target
	c.dates = dates
	c.loaded = true
}

// Status reports whether a calendar is resident and which target it was built for
func (c *CalendarCache) Status() (bool, models.TradingDate) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded, c.target
}

// Clear empties the slot
func (c *CalendarCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.target = ""
	c.dates = nil
	c.loaded = false
}
