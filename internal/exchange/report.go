package exchange

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/epeers/twrank/internal/models"
)

// reportLayout describes where a market's daily report keeps the fields we need
type reportLayout struct {
	market        models.Market
	accept        func(line string) bool
	codeHeader    string
	headers       [4]string // code, name, turnover, close
	fallback      [4]int    // positions used when no header row is found
	maxCodeLength int       // 0 means unlimited
	dropIdle      bool      // drop nil/zero turnover rows
}

var listedLayout = reportLayout{
	market: models.MarketListed,
	accept: func(line string) bool {
		return len(strings.Split(line, `",`)) == listedFieldCount
	},
	codeHeader: listedCodeHeader,
	headers:    [4]string{listedCodeHeader, listedNameHeader, listedTurnoverHeader, listedCloseHeader},
	fallback:   [4]int{0, 1, 4, 8},
}

var otcLayout = reportLayout{
	market: models.MarketOTC,
	accept: func(line string) bool {
		return len(strings.Split(line, ",")) > otcMinFieldCount
	},
	codeHeader:    otcCodeHeader,
	headers:       [4]string{otcCodeHeader, otcNameHeader, otcTurnoverHeader, otcCloseHeader},
	fallback:      [4]int{0, 1, 9, 2},
	maxCodeLength: otcMaxCodeLength,
	dropIdle:      true,
}

// ParseListedReport parses the listed exchange's MI_INDEX CSV
func ParseListedReport(body []byte) ([]models.SecurityRecord, error) {
	return parseReport(body, listedLayout)
}

// ParseOTCReport parses the OTC exchange's daily quote CSV
func ParseOTCReport(body []byte) ([]models.SecurityRecord, error) {
	return parseReport(body, otcLayout)
}

func parseReport(body []byte, layout reportLayout) ([]models.SecurityRecord, error) {
	body = bytes.TrimPrefix(body, []byte("\ufeff"))

	var (
		columns  = layout.fallback
		header   bool
		dataRows int
		records  []models.SecurityRecord
	)

	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimRight(line, "\r")
		// Field count is what separates real rows from titles, notes and footers
		if !layout.accept(line) {
			continue
		}

		row, err := splitCSVLine(strings.ReplaceAll(line, "=", ""))
		if err != nil || len(row) == 0 {
			continue
		}

		if strings.TrimSpace(row[0]) == layout.codeHeader {
			if !header {
				columns = locateColumns(row, layout)
				header = true
			}
			continue
		}

		if len(row) <= maxIndex(columns) {
			continue
		}
		dataRows++

		code := strings.TrimSpace(row[columns[0]])
		if layout.maxCodeLength > 0 && len(code) > layout.maxCodeLength {
			continue
		}
		if code == "" || strings.HasPrefix(code, models.ReservedCodePrefix) {
			continue
		}

		rec := models.SecurityRecord{
			Code:     code,
			Name:     strings.TrimSpace(row[columns[1]]),
			Turnover: ParseNumber(row[columns[2]]),
			Close:    ParseNumber(row[columns[3]]),
			Market:   layout.market,
		}
		if layout.dropIdle && (rec.Turnover == nil || *rec.Turnover == 0) {
			continue
		}
		records = append(records, rec)
	}

	if dataRows == 0 {
		return nil, fmt.Errorf("%w: no %s rows in report", ErrMalformedSnapshot, layout.market)
	}

	return records, nil
}

func splitCSVLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}

func locateColumns(header []string, layout reportLayout) [4]int {
	columns := layout.fallback
	for i, want := range layout.headers {
		for j, cell := range header {
			if strings.TrimSpace(cell) == want {
				columns[i] = j
				break
			}
		}
	}
	return columns
}

func maxIndex(columns [4]int) int {
	m := columns[0]
	for _, c := range columns[1:] {
		if c > m {
			m = c
		}
	}
	return m
}

// ParseNumber strips thousands separators and whitespace and parses a float.
// Placeholders such as "--" and anything unparsable yield nil.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
