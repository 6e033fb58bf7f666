package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/epeers/twrank/internal/models"
	"github.com/epeers/twrank/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DefaultTopN is the result size when top_n is omitted
const DefaultTopN = 50

// RankingHandler serves the turnover ranking and health endpoints
type RankingHandler struct {
	rankingSvc *services.RankingService
}

// NewRankingHandler creates a new RankingHandler
func NewRankingHandler(rankingSvc *services.RankingService) *RankingHandler {
	return &RankingHandler{
		rankingSvc: rankingSvc,
	}
}

// Health handles GET / and GET /health
// @Summary Service health
// @Description Liveness plus the trading calendar cached for the most recent target date
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthStatus
// @Router /health [get]
func (h *RankingHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.rankingSvc.Health())
}

// GetTop handles GET /top50
// @Summary Turnover ranking with price drift
// @Description Ranks listed and OTC securities by turnover on a trading date, with close-price drift against 1, 5, 10, 20, 60, 120 and 240 trading days earlier. Without a date the most recent trading date with data is used.
// @Tags ranking
// @Produce json
// @Param date query string false "Trading date (YYYYMMDD)"
// @Param top_n query int false "Number of rows" default(50)
// @Param market query string false "all, listed or otc" default(all)
// @Success 200 {object} models.RankingResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /top50 [get]
func (h *RankingHandler) GetTop(c *gin.Context) {
	var req models.GetRankingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	topN := DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	if topN <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: fmt.Sprintf("top_n must be positive, got %d", topN),
		})
		return
	}

	filter, err := models.ParseMarketFilter(req.Market)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())

	var (
		records      []models.AggregatedRecord
		date         models.TradingDate
		autoDetected bool
	)
	if req.Date == "" {
		autoDetected = true
		records, date, err = h.rankingSvc.FindLatest(warnCtx, filter, topN, 0)
	} else {
		date, err = models.ParseTradingDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
			return
		}
		records, err = h.rankingSvc.GetRanking(warnCtx, date, topN, filter)
	}
	if err != nil {
		writeRankingError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RankingResponse{
		Success:      true,
		Date:         date,
		AutoDetected: autoDetected,
		Count:        len(records),
		Data:         records,
		Warnings:     wc.GetWarnings(),
	})
}

func writeRankingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotATradingDate):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "not_a_trading_date",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidTopN):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNoCalendarAvailable):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_unavailable",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNoRecentTradingDate):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no_recent_trading_date",
			Message: err.Error(),
		})
	default:
		log.Errorf("ranking failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
