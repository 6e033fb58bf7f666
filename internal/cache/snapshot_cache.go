package cache

import (
	"time"

	"github.com/epeers/twrank/internal/models"
	gocache "github.com/patrickmn/go-cache"
)

// SnapshotCache memoizes successfully fetched daily reports. A report for a past
// date does not change, so a hit saves a rate-limited upstream request.
type SnapshotCache struct {
	store *gocache.Cache
}

// NewSnapshotCache creates a snapshot memo; ttl <= 0 disables it
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		return &SnapshotCache{}
	}
	return &SnapshotCache{store: gocache.New(ttl, 2*ttl)}
}

func snapshotKey(market models.Market, date models.TradingDate) string {
	return string(market) + ":" + string(date)
}

// Get retrieves a memoized snapshot
func (c *SnapshotCache) Get(market models.Market, date models.TradingDate) (*models.MarketSnapshot, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	v, found := c.store.Get(snapshotKey(market, date))
	if !found {
		return nil, false
	}
	return v.(*models.MarketSnapshot), true
}

// Set memoizes a snapshot with the default expiration
func (c *SnapshotCache) Set(snap *models.MarketSnapshot) {
	if c == nil || c.store == nil || snap == nil {
		return
	}
	c.store.Set(snapshotKey(snap.Market, snap.Date), snap, gocache.DefaultExpiration)
}

// Len returns the number of resident snapshots
func (c *SnapshotCache) Len() int {
	if c == nil || c.store == nil {
		return 0
	}
	return c.store.ItemCount()
}
