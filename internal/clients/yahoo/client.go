// Package yahoo provides a client for the Yahoo Finance chart API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/interfaces"
	"github.com/brfialho/pesquisa/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	userAgent = "Mozilla/5.0"
)

// Client implements the QuoteClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// chartResponse mirrors the nested chart/result/meta structure of the
// Yahoo Finance chart endpoint.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// FetchQuote retrieves the current quote for a ticker. The absence of a
// quote is a normal outcome, not an error: an empty ticker, a non-2xx
// response, a transport failure, or an unparseable body all degrade to
// the sentinel quote for that symbol.
func (c *Client) FetchQuote(ctx context.Context, ticker models.TickerSymbol) models.Quote {
	if ticker.IsEmpty() {
		return models.SentinelQuote("")
	}

	quote, err := c.fetchQuote(ctx, ticker.Value)
	if err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker.Value).Msg("Quote fetch failed (continuing without quote)")
		return models.SentinelQuote(ticker.Value)
	}
	return quote
}

func (c *Client) fetchQuote(ctx context.Context, ticker string) (models.Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.Quote{}, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("ticker", ticker).Msg("Quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Quote{}, fmt.Errorf("chart endpoint returned status %d", resp.StatusCode)
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Quote{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(body.Chart.Result) == 0 {
		return models.Quote{}, fmt.Errorf("chart response has no result")
	}

	meta := body.Chart.Result[0].Meta

	currency := meta.Currency
	if currency == "" {
		currency = "USD"
	}

	name := meta.Symbol
	if name == "" {
		name = ticker
	}

	return models.Quote{
		Symbol:      ticker,
		Price:       meta.RegularMarketPrice,
		Currency:    currency,
		DisplayName: name,
	}, nil
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
