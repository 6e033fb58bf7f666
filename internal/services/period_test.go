package services

import (
	"testing"

	"github.com/epeers/twrank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriods(t *testing.T) {
	cal := models.TradingCalendar{"20251009", "20251008", "20251007", "20251006", "20251003", "20251002", "20251001"}

	testCases := []struct {
		name     string
		target   models.TradingDate
		expected map[int]models.TradingDate // missing offsets must resolve to nil
	}{
		{
			name:   "latest date",
			target: "20251009",
			expected: map[int]models.TradingDate{
				1: "20251008",
				5: "20251002",
			},
		},
		{
			name:   "older target shifts every offset",
			target: "20251008",
			expected: map[int]models.TradingDate{
				1: "20251007",
				5: "20251001",
			},
		},
		{
			name:     "last entry has no history",
			target:   "20251001",
			expected: map[int]models.TradingDate{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			periods, err := ResolvePeriods(cal, tc.target, models.Offsets)
			require.NoError(t, err)

			assert.Equal(t, tc.target, periods.Today)
			assert.Equal(t, models.Offsets, periods.Offsets)
			for _, k := range models.Offsets {
				got, ok := periods.DateFor(k)
				want, expected := tc.expected[k]
				assert.Equal(t, expected, ok, "offset %d availability", k)
				assert.Equal(t, want, got, "offset %d", k)
			}
		})
	}
}

func TestResolvePeriods_NotATradingDate(t *testing.T) {
	cal := models.TradingCalendar{"20251009", "20251008"}

	for _, target := range []models.TradingDate{"20251012", "20251010", "20250101"} {
		_, err := ResolvePeriods(cal, target, models.Offsets)
		assert.ErrorIs(t, err, ErrNotATradingDate, "target %s", target)
	}

	_, err := ResolvePeriods(nil, "20251009", models.Offsets)
	assert.ErrorIs(t, err, ErrNotATradingDate)
}

func TestResolvePeriods_FullCalendar(t *testing.T) {
	cal := models.NewTradingCalendar(weekdays("20240101", "20251009"), 250)

	periods, err := ResolvePeriods(cal, "20251009", models.Offsets)
	require.NoError(t, err)

	assert.Equal(t, models.Offsets, periods.Available())
	d, ok := periods.DateFor(240)
	require.True(t, ok)
	assert.Equal(t, cal[240], d)
}
