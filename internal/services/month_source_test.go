package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/epeers/twrank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory MonthStore
type memoryStore struct {
	mu       sync.Mutex
	months   map[string][]models.TradingDate
	readErr  error
	writeErr error
	writes   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{months: make(map[string][]models.TradingDate)}
}

func (m *memoryStore) GetMonth(ctx context.Context, year int, month time.Month) ([]models.TradingDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.months[fmt.Sprintf("%04d%02d", year, int(month))], nil
}

func (m *memoryStore) StoreMonth(ctx context.Context, year int, month time.Month, dates []models.TradingDate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.months[fmt.Sprintf("%04d%02d", year, int(month))] = dates
	return nil
}

func newTestMonthSource(store MonthStore, upstream MonthSource, now time.Time) *CachedMonthSource {
	src := NewCachedMonthSource(store, upstream)
	src.now = func() time.Time { return now }
	return src
}

var midOctober = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func TestCachedMonthSource_CompleteMonthStoredOnce(t *testing.T) {
	upstream := newFakeMonths(weekdays("20250901", "20250930")...)
	store := newMemoryStore()
	src := newTestMonthSource(store, upstream, midOctober)
	ctx := context.Background()

	first, err := src.FetchMonthTradingDates(ctx, 2025, time.September)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := src.FetchMonthTradingDates(ctx, 2025, time.September)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.callCount(), "second read must come from the store")
	assert.Equal(t, 1, store.writes)
}

func TestCachedMonthSource_CurrentMonthAlwaysUpstream(t *testing.T) {
	upstream := newFakeMonths(weekdays("20251001", "20251015")...)
	store := newMemoryStore()
	src := newTestMonthSource(store, upstream, midOctober)

	for i := 0; i < 2; i++ {
		_, err := src.FetchMonthTradingDates(context.Background(), 2025, time.October)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, upstream.callCount())
	assert.Equal(t, 0, store.writes, "a month still in progress is never persisted")
}

func TestCachedMonthSource_EmptyMonthNotStored(t *testing.T) {
	upstream := newFakeMonths()
	store := newMemoryStore()
	src := newTestMonthSource(store, upstream, midOctober)

	dates, err := src.FetchMonthTradingDates(context.Background(), 2025, time.August)
	require.NoError(t, err)
	assert.Empty(t, dates)
	assert.Equal(t, 0, store.writes)
}

func TestCachedMonthSource_StoreFailuresFallThrough(t *testing.T) {
	upstream := newFakeMonths(weekdays("20250901", "20250930")...)
	store := newMemoryStore()
	store.readErr = errors.New("connection refused")
	store.writeErr = errors.New("connection refused")
	src := newTestMonthSource(store, upstream, midOctober)

	dates, err := src.FetchMonthTradingDates(context.Background(), 2025, time.September)
	require.NoError(t, err)
	assert.Len(t, dates, 22)
	assert.Equal(t, 1, upstream.callCount())
}

func TestCachedMonthSource_UpstreamErrorPropagates(t *testing.T) {
	upstream := newFakeMonths()
	upstream.errs["202509"] = errors.New("503")
	src := newTestMonthSource(newMemoryStore(), upstream, midOctober)

	_, err := src.FetchMonthTradingDates(context.Background(), 2025, time.September)
	assert.Error(t, err)
}
