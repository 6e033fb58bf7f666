package models

// GetRankingRequest represents the query parameters of GET /top50
type GetRankingRequest struct {
	Date   string `form:"date"`
	TopN   *int   `form:"top_n"`
	Market string `form:"market"`
}

// RankingResponse is the ranked table returned by GET /top50
type RankingResponse struct {
	Success      bool               `json:"success"`
	Date         TradingDate        `json:"date"`
	AutoDetected bool               `json:"auto_detected"`
	Count        int                `json:"count"`
	Data         []AggregatedRecord `json:"data"`
	Warnings     []Warning          `json:"warnings,omitempty"`
}

// HealthStatus reports liveness plus the calendar cache slot
type HealthStatus struct {
	Status      string       `json:"status"`
	CacheLoaded bool         `json:"cache_loaded"`
	CachedDate  *TradingDate `json:"cached_date"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
