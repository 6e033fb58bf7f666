package models

import (
	"fmt"
	"strings"
)

// Market identifies one of the two exchange segments
type Market string

const (
	MarketListed Market = "listed"
	MarketOTC    Market = "otc"
)

// MarketFilter selects which markets a ranking covers
type MarketFilter string

const (
	MarketFilterAll    MarketFilter = "all"
	MarketFilterListed MarketFilter = "listed"
	MarketFilterOTC    MarketFilter = "otc"
)

// ParseMarketFilter accepts all/listed/otc plus the exchange names twse/tpex
func ParseMarketFilter(s string) (MarketFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return MarketFilterAll, nil
	case "listed", "twse":
		return MarketFilterListed, nil
	case "otc", "tpex":
		return MarketFilterOTC, nil
	}
	return "", fmt.Errorf("market must be one of all, listed, otc; got %q", s)
}

// Markets expands the filter in output order: listed before OTC
func (f MarketFilter) Markets() []Market {
	switch f {
	case MarketFilterListed:
		return []Market{MarketListed}
	case MarketFilterOTC:
		return []Market{MarketOTC}
	}
	return []Market{MarketListed, MarketOTC}
}

// ReservedCodePrefix marks the ETF/index-fund block excluded from all output
const ReservedCodePrefix = "00"

// SecurityRecord is one security's line in a market's daily report
type SecurityRecord struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Turnover *float64 `json:"turnover"` // nil when unparsable
	Close    *float64 `json:"close"`    // nil when the security did not trade
	Market   Market   `json:"market"`
}

// MarketSnapshot is the full set of records for one market on one date.
// It is never modified after the fetcher returns it.
type MarketSnapshot struct {
	Market  Market
	Date    TradingDate
	Records []SecurityRecord
}

// Closes indexes closing prices by code. The first occurrence of a code wins.
func (s *MarketSnapshot) Closes() map[string]*float64 {
	out := make(map[string]*float64, len(s.Records))
	for _, r := range s.Records {
		if _, ok := out[r.Code]; ok {
			continue
		}
		out[r.Code] = r.Close
	}
	return out
}

// Drifts holds the percentage change against each offset date.
// Every field is always serialized; nil means the drift is unknown.
type Drifts struct {
	Drift1D   *float64 `json:"drift_1d"`
	Drift5D   *float64 `json:"drift_5d"`
	Drift10D  *float64 `json:"drift_10d"`
	Drift20D  *float64 `json:"drift_20d"`
	Drift60D  *float64 `json:"drift_60d"`
	Drift120D *float64 `json:"drift_120d"`
	Drift240D *float64 `json:"drift_240d"`
}

func (d *Drifts) field(offset int) **float64 {
	switch offset {
	case 1:
		return &d.Drift1D
	case 5:
		return &d.Drift5D
	case 10:
		return &d.Drift10D
	case 20:
		return &d.Drift20D
	case 60:
		return &d.Drift60D
	case 120:
		return &d.Drift120D
	case 240:
		return &d.Drift240D
	}
	return nil
}

// Get returns the drift for a trading-day offset
func (d *Drifts) Get(offset int) *float64 {
	if f := d.field(offset); f != nil {
		return *f
	}
	return nil
}

// Set stores the drift for an offset; unknown offsets are ignored
func (d *Drifts) Set(offset int, v *float64) {
	if f := d.field(offset); f != nil {
		*f = v
	}
}

// AggregatedRecord is one row of the ranking table
type AggregatedRecord struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Turnover *float64 `json:"turnover"`
	Close    *float64 `json:"close"`
	Market   Market   `json:"market"`
	Drifts
}
