package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/epeers/twrank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarCache_HitOnlyForSameTarget(t *testing.T) {
	c := NewCalendarCache()

	_, ok := c.Get("20251009")
	assert.False(t, ok, "empty cache must miss")

	cal := models.TradingCalendar{"20251009", "20251008", "20251007"}
	c.Set("20251009", cal)

	got, ok := c.Get("20251009")
	require.True(t, ok)
	assert.Equal(t, cal, got)

	_, ok = c.Get("20251008")
	assert.False(t, ok, "different target date must miss")
}

func TestCalendarCache_ReplacedWholesale(t *testing.T) {
	c := NewCalendarCache()
	c.Set("20251009", models.TradingCalendar{"20251009", "20251008"})
	c.Set("20251008", models.TradingCalendar{"20251008"})

	_, ok := c.Get("20251009")
	assert.False(t, ok, "old slot must be gone after replacement")

	loaded, target := c.Status()
	assert.True(t, loaded)
	assert.Equal(t, models.TradingDate("20251008"), target)
}

func TestCalendarCache_SetCopiesInput(t *testing.T) {
	c := NewCalendarCache()
	cal := models.TradingCalendar{"20251009", "20251008"}
	c.Set("20251009", cal)
	cal[0] = "19990101"

	got, _ := c.Get("20251009")
	assert.Equal(t, models.TradingDate("20251009"), got[0])
}

func TestCalendarCache_GetReturnsCopy(t *testing.T) {
	c := NewCalendarCache()
	c.Set("20251009", models.TradingCalendar{"20251009", "20251008"})

	first, ok := c.Get("20251009")
	require.True(t, ok)
	first[1] = "19990101"

	second, _ := c.Get("20251009")
	assert.Equal(t, models.TradingCalendar{"20251009", "20251008"}, second)
}

func TestCalendarCache_Clear(t *testing.T) {
	c := NewCalendarCache()
	c.Set("20251009", models.TradingCalendar{"20251009"})
	c.Clear()

	loaded, target := c.Status()
	assert.False(t, loaded)
	assert.Empty(t, target)
}

func TestCalendarCache_ConcurrentReplace(t *testing.T) {
	c := NewCalendarCache()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		target := models.TradingDate(fmt.Sprintf("202510%02d", i%28+1))
		go func() {
			defer wg.Done()
			c.Set(target, models.TradingCalendar{target})
		}()
		go func() {
			defer wg.Done()
			// A hit must always be a fully built calendar for that target
			if cal, ok := c.Get(target); ok {
				assert.Equal(t, models.TradingCalendar{target}, cal)
			}
		}()
	}
	wg.Wait()

	loaded, _ := c.Status()
	assert.True(t, loaded)
}

func TestSnapshotCache(t *testing.T) {
	c := NewSnapshotCache(time.Minute)
	snap := &models.MarketSnapshot{Market: models.MarketListed, Date: "20251009"}

	_, ok := c.Get(models.MarketListed, "20251009")
	assert.False(t, ok)

	c.Set(snap)

	got, ok := c.Get(models.MarketListed, "20251009")
	require.True(t, ok)
	assert.Same(t, snap, got)

	_, ok = c.Get(models.MarketOTC, "20251009")
	assert.False(t, ok, "markets are keyed separately")
	assert.Equal(t, 1, c.Len())
}

func TestSnapshotCache_Disabled(t *testing.T) {
	c := NewSnapshotCache(0)
	c.Set(&models.MarketSnapshot{Market: models.MarketListed, Date: "20251009"})

	_, ok := c.Get(models.MarketListed, "20251009")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	var nilCache *SnapshotCache
	_, ok = nilCache.Get(models.MarketListed, "20251009")
	assert.False(t, ok)
}
