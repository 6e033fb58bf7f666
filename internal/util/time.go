package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/epeers/twrank/internal/models"
	log "github.com/sirupsen/logrus"
)

// rocYearOffset converts a Republic of China calendar year to a Gregorian one
const rocYearOffset = 1911

// TaipeiLocation returns the exchange's time zone, falling back to UTC+8.
func TaipeiLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		log.Errorf("Failed to load location 'Asia/Taipei': %v. Falling back to fixed UTC+8.", err)
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// TodayInTaipei returns the current calendar date on the exchange's clock
func TodayInTaipei(now time.Time) models.TradingDate {
	return models.NewTradingDate(now.In(TaipeiLocation()))
}

// ROCToTradingDate converts "114/10/09" (ROC year/month/day) to "20251009".
func ROCToTradingDate(roc string) (models.TradingDate, error) {
	parts := strings.Split(strings.TrimSpace(roc), "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed ROC date %q", roc)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("malformed ROC year in %q: %w", roc, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("malformed ROC month in %q: %w", roc, err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("malformed ROC day in %q: %w", roc, err)
	}
	return models.ParseTradingDate(fmt.Sprintf("%04d%02d%02d", year+rocYearOffset, month, day))
}

// PreviousMonth steps back one calendar month, rolling the year over in January
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// MonthComplete reports whether every day of the month lies strictly before today
func MonthComplete(year int, month time.Month, today models.TradingDate) bool {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return models.NewTradingDate(lastDay) < today
}

// DaysBefore returns the calendar date n days before d
func DaysBefore(d models.TradingDate, n int) models.TradingDate {
	return models.NewTradingDate(d.Time().AddDate(0, 0, -n))
}
