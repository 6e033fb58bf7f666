package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTradingDate(t *testing.T) {
	testCases := []struct {
		input string
		valid bool
	}{
		{"20251009", true},
		{"20240229", true},
		{"20250229", false},
		{"2025-10-09", false},
		{"2025109", false},
		{"", false},
		{"abcdefgh", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			d, err := ParseTradingDate(tc.input)
			if !tc.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TradingDate(tc.input), d)
		})
	}
}

func TestTradingDate_Conversions(t *testing.T) {
	d := TradingDate("20251009")

	assert.Equal(t, time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, "2025/10/09", d.Slashed())
	assert.Equal(t, d, NewTradingDate(time.Date(2025, 10, 9, 23, 59, 0, 0, time.UTC)))
}

func TestNewTradingCalendar(t *testing.T) {
	dates := []TradingDate{"20251002", "20251009", "20251003", "20251009", "20251001"}

	cal := NewTradingCalendar(dates, 3)
	assert.Equal(t, TradingCalendar{"20251009", "20251003", "20251002"}, cal)
	assert.Equal(t, TradingDate("20251009"), cal.Latest())
	assert.Equal(t, 1, cal.IndexOf("20251003"))
	assert.Equal(t, -1, cal.IndexOf("20251001"), "truncated away")
	assert.False(t, cal.Contains("20251012"))

	assert.Len(t, NewTradingCalendar(dates, 0), 4, "no limit keeps every distinct date")
	assert.Equal(t, TradingDate(""), TradingCalendar(nil).Latest())
}

func TestParseMarketFilter(t *testing.T) {
	testCases := []struct {
		input    string
		expected MarketFilter
		markets  []Market
	}{
		{"", MarketFilterAll, []Market{MarketListed, MarketOTC}},
		{"all", MarketFilterAll, []Market{MarketListed, MarketOTC}},
		{"listed", MarketFilterListed, []Market{MarketListed}},
		{"TWSE", MarketFilterListed, []Market{MarketListed}},
		{"otc", MarketFilterOTC, []Market{MarketOTC}},
		{" tpex ", MarketFilterOTC, []Market{MarketOTC}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			f, err := ParseMarketFilter(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
			assert.Equal(t, tc.markets, f.Markets())
		})
	}

	_, err := ParseMarketFilter("nyse")
	assert.Error(t, err)
}

func TestMarketSnapshot_ClosesFirstOccurrenceWins(t *testing.T) {
	first, second := 100.0, 200.0
	snap := MarketSnapshot{Records: []SecurityRecord{
		{Code: "2330", Close: &first},
		{Code: "2330", Close: &second},
		{Code: "2317"},
	}}

	closes := snap.Closes()
	require.Contains(t, closes, "2330")
	assert.Equal(t, 100.0, *closes["2330"])
	assert.Contains(t, closes, "2317")
	assert.Nil(t, closes["2317"])
}

func TestDrifts_GetSet(t *testing.T) {
	var d Drifts
	v := 1.5
	for _, k := range Offsets {
		d.Set(k, &v)
		assert.Equal(t, &v, d.Get(k), "offset %d", k)
	}

	d.Set(3, &v)
	assert.Nil(t, d.Get(3), "unconfigured offsets are ignored")
}

func TestAggregatedRecord_JSONAlwaysCarriesDrifts(t *testing.T) {
	turnover := 1000.0
	rec := AggregatedRecord{Code: "2330", Name: "台積電", Turnover: &turnover, Market: MarketListed}

	body, err := json.Marshal(rec)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fields))

	for _, key := range []string{"drift_1d", "drift_5d", "drift_10d", "drift_20d", "drift_60d", "drift_120d", "drift_240d", "close"} {
		v, ok := fields[key]
		assert.True(t, ok, "%s must be present", key)
		assert.Nil(t, v, "%s must be null", key)
	}
	assert.Equal(t, "listed", fields["market"])
}
