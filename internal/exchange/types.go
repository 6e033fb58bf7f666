package exchange

// StockDayResponse represents the listed exchange's STOCK_DAY reply: one month
// of daily trading for a single security. Rows start with an ROC date.
type StockDayResponse struct {
	Stat   string          `json:"stat"`
	Date   string          `json:"date"`
	Title  string          `json:"title"`
	Fields []string        `json:"fields"`
	Data   [][]interface{} `json:"data"`
}

// statOK is the only stat value that carries data
const statOK = "OK"

// column names in the daily reports
const (
	listedCodeHeader     = "證券代號"
	listedNameHeader     = "證券名稱"
	listedTurnoverHeader = "成交金額"
	listedCloseHeader    = "收盤價"

	otcCodeHeader     = "代號"
	otcNameHeader     = "名稱"
	otcTurnoverHeader = "成交金額(元)"
	otcCloseHeader    = "收盤"
)

// listedFieldCount is the number of pieces a valid listed row splits into on `",`
const listedFieldCount = 17

// otcMinFieldCount is exceeded by every valid OTC row when split on commas
const otcMinFieldCount = 10

// otcMaxCodeLength drops warrants and other long-coded instruments from the OTC report
const otcMaxCodeLength = 4
