package models

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the canonical 8-digit form used by the listed exchange
const DateLayout = "20060102"

// TradingDate is a calendar date in YYYYMMDD form. Lexical order matches
// chronological order, so values compare directly as strings.
type TradingDate string

// ParseTradingDate validates an 8-digit YYYYMMDD string
func ParseTradingDate(s string) (TradingDate, error) {
	if len(s) != 8 {
		return "", fmt.Errorf("date %q must be 8 digits (YYYYMMDD)", s)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("date %q is not a valid YYYYMMDD date", s)
	}
	return TradingDate(s), nil
}

// NewTradingDate formats a time as a TradingDate, ignoring the clock part
func NewTradingDate(t time.Time) TradingDate {
	return TradingDate(t.Format(DateLayout))
}

// Time returns midnight UTC of the date. Callers must hold a validated value.
func (d TradingDate) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

func (d TradingDate) String() string {
	return string(d)
}

// Slashed renders the date as YYYY/MM/DD, the form the OTC report expects
func (d TradingDate) Slashed() string {
	s := string(d)
	if len(s) != 8 {
		return s
	}
	return s[:4] + "/" + s[4:6] + "/" + s[6:8]
}

// TradingCalendar lists trading dates most recent first, without duplicates
type TradingCalendar []TradingDate

// NewTradingCalendar deduplicates dates, sorts them descending and keeps at most limit entries.
// A limit <= 0 keeps everything.
func NewTradingCalendar(dates []TradingDate, limit int) TradingCalendar {
	seen := make(map[TradingDate]struct{}, len(dates))
	cal := make(TradingCalendar, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		cal = append(cal, d)
	}
	sort.Slice(cal, func(i, j int) bool { return cal[i] > cal[j] })
	if limit > 0 && len(cal) > limit {
		cal = cal[:limit]
	}
	return cal
}

// IndexOf returns the position of d in the calendar, or -1
func (c TradingCalendar) IndexOf(d TradingDate) int {
	for i, cd := range c {
		if cd == d {
			return i
		}
	}
	return -1
}

// Contains reports whether d is a known trading date
func (c TradingCalendar) Contains(d TradingDate) bool {
	return c.IndexOf(d) >= 0
}

// Latest returns the most recent date, or "" for an empty calendar
func (c TradingCalendar) Latest() TradingDate {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Offsets are the trading-day horizons drift is reported for
var Offsets = []int{1, 5, 10, 20, 60, 120, 240}

// PeriodMap maps "today" and each trading-day offset to a concrete date.
// An offset maps to nil when the calendar does not reach back that far.
type PeriodMap struct {
	Today   TradingDate
	Offsets []int
	Dates   map[int]*TradingDate
}

// DateFor returns the date resolved for offset k, if any
func (p *PeriodMap) DateFor(k int) (TradingDate, bool) {
	d, ok := p.Dates[k]
	if !ok || d == nil {
		return "", false
	}
	return *d, true
}

// Available lists the offsets that resolved to a date, in configured order
func (p *PeriodMap) Available() []int {
	var out []int
	for _, k := range p.Offsets {
		if _, ok := p.DateFor(k); ok {
			out = append(out, k)
		}
	}
	return out
}
