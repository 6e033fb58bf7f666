package exchange

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/twrank/internal/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// The listed market (TWSE) serves both the daily report and the month history
// of the reference security; the OTC market (TPEx) serves its own daily report.
const (
	defaultListedBaseURL = "https://www.twse.com.tw"
	defaultOTCBaseURL    = "https://www.tpex.org.tw"
	defaultReference     = "2330"
	userAgent            = "Mozilla/5.0 (compatible; twrank/1.0)"
)

var (
	// ErrUpstreamUnavailable covers network errors, timeouts and non-2xx replies
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedSnapshot means a report parsed to zero valid rows
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// Options configures a Client. Zero values fall back to production defaults.
type Options struct {
	ListedBaseURL   string
	OTCBaseURL      string
	ReferenceStock  string
	RequestInterval time.Duration // minimum spacing between requests to one host
	Timeout         time.Duration
	InsecureTLS     bool
}

// upstream pairs an HTTP client for one host with the limiter spacing its requests
type upstream struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// Client fetches daily reports and reference-security history from the two exchanges
type Client struct {
	listed         *upstream
	otc            *upstream
	referenceStock string
}

// NewClient creates a new exchange client
func NewClient(opts Options) *Client {
	if opts.ListedBaseURL == "" {
		opts.ListedBaseURL = defaultListedBaseURL
	}
	if opts.OTCBaseURL == "" {
		opts.OTCBaseURL = defaultOTCBaseURL
	}
	if opts.ReferenceStock == "" {
		opts.ReferenceStock = defaultReference
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		listed:         newUpstream(opts.ListedBaseURL, opts),
		otc:            newUpstream(opts.OTCBaseURL, opts),
		referenceStock: opts.ReferenceStock,
	}
}

func newUpstream(baseURL string, opts Options) *upstream {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", userAgent)

	// Both exchanges have served incomplete certificate chains in the past
	if opts.InsecureTLS {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	limit := rate.Inf
	if opts.RequestInterval > 0 {
		limit = rate.Every(opts.RequestInterval)
	}

	return &upstream{
		http:    client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// FetchSnapshot fetches and normalizes one market's daily report
func (c *Client) FetchSnapshot(ctx context.Context, market models.Market, date models.TradingDate) (*models.MarketSnapshot, error) {
	var (
		records []models.SecurityRecord
		err     error
	)

	switch market {
	case models.MarketListed:
		records, err = c.fetchListed(ctx, date)
	case models.MarketOTC:
		records, err = c.fetchOTC(ctx, date)
	default:
		return nil, fmt.Errorf("unknown market %q", market)
	}
	if err != nil {
		return nil, fmt.Errorf("%s snapshot for %s: %w", market, date, err)
	}

	return &models.MarketSnapshot{
		Market:  market,
		Date:    date,
		Records: records,
	}, nil
}

func (c *Client) fetchListed(ctx context.Context, date models.TradingDate) ([]models.SecurityRecord, error) {
	body, err := c.listed.get(ctx, "/rwd/zh/afterTrading/MI_INDEX", map[string]string{
		"date":     date.String(),
		"type":     "ALLBUT0999",
		"response": "csv",
	})
	if err != nil {
		return nil, err
	}
	return ParseListedReport(body)
}

func (c *Client) fetchOTC(ctx context.Context, date models.TradingDate) ([]models.SecurityRecord, error) {
	body, err := c.otc.get(ctx, "/www/zh-tw/afterTrading/otc", map[string]string{
		"date":     date.Slashed(),
		"type":     "EW",
		"response": "csv",
		"order":    "8",
		"sort":     "desc",
	})
	if err != nil {
		return nil, err
	}
	return ParseOTCReport(body)
}

func (u *upstream) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	resp, err := u.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrUpstreamUnavailable, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUpstreamUnavailable, path, resp.StatusCode())
	}

	return resp.Body(), nil
}
