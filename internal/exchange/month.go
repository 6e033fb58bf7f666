package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/epeers/twrank/internal/models"
	"github.com/epeers/twrank/internal/util"
	log "github.com/sirupsen/logrus"
)

// FetchMonthTradingDates returns the dates the reference security traded on during
// the given month, most recent first. A month the exchange has no data for
// (non-OK stat, missing data) is an empty list, not an error.
func (c *Client) FetchMonthTradingDates(ctx context.Context, year int, month time.Month) ([]models.TradingDate, error) {
	body, err := c.listed.get(ctx, "/rwd/zh/afterTrading/STOCK_DAY", map[string]string{
		"date":     fmt.Sprintf("%04d%02d01", year, int(month)),
		"stockNo":  c.referenceStock,
		"response": "json",
	})
	if err != nil {
		return nil, fmt.Errorf("month %04d-%02d: %w", year, int(month), err)
	}

	return ParseStockDay(body)
}

// ParseStockDay extracts trading dates from a STOCK_DAY body
func ParseStockDay(body []byte) ([]models.TradingDate, error) {
	var resp StockDayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal month response: %v", ErrMalformedSnapshot, err)
	}

	if resp.Stat != statOK || resp.Data == nil {
		log.Debugf("month response stat=%q rows=%d, treating as empty", resp.Stat, len(resp.Data))
		return nil, nil
	}

	dates := make([]models.TradingDate, 0, len(resp.Data))
	for _, row := range resp.Data {
		if len(row) == 0 {
			continue
		}
		roc, ok := row[0].(string)
		if !ok {
			continue
		}
		d, err := util.ROCToTradingDate(roc)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i] > dates[j] })
	return dates, nil
}
