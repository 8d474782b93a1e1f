// Package gnews provides a client for the Google News RSS feed
package gnews

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/interfaces"
	"github.com/brfialho/pesquisa/internal/models"
)

const (
	DefaultBaseURL   = "https://news.google.com/rss"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	// MaxItems caps how many feed items a single fetch returns.
	MaxItems = 5

	userAgent = "Mozilla/5.0"
)

// Client implements the NewsClient interface
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

// NewClient creates a new Google News client
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

// rssItem uses pointer fields so an absent element can be told apart
// from a present element with empty text. Absent title or link makes
// the item structurally invalid; empty text only gets a placeholder.
type rssItem struct {
	Title   *string `xml:"title"`
	Link    *string `xml:"link"`
	PubDate *string `xml:"pubDate"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

// FetchNews retrieves up to five recent headlines for a company, in the
// order the feed returns them (freshest first). It never fails the
// caller: any transport, status, or parse error yields an empty slice
// and a logged warning.
func (c *Client) FetchNews(ctx context.Context, query models.CompanyQuery) []models.NewsItem {
	items, err := c.fetchNews(ctx, query.String())
	if err != nil {
		c.logger.Warn().Err(err).Str("company", query.String()).Msg("News fetch failed (continuing without news)")
		return nil
	}
	return items
}

func (c *Client) fetchNews(ctx context.Context, query string) ([]models.NewsItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "pt-BR")
	params.Set("gl", "BR")
	params.Set("ceid", "BR:pt-419")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("url", c.baseURL).Str("query", query).Msg("News feed request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	rssItems := feed.Channel.Items
	if len(rssItems) > MaxItems {
		rssItems = rssItems[:MaxItems]
	}

	var items []models.NewsItem
	for i, item := range rssItems {
		// Title and link elements are structural prerequisites.
		if item.Title == nil || item.Link == nil {
			continue
		}

		title := strings.TrimSpace(*item.Title)
		if title == "" {
			title = fmt.Sprintf("Sem título %d", i+1)
		}

		published := models.NewsDateUnavailable
		if item.PubDate != nil && strings.TrimSpace(*item.PubDate) != "" {
			published = strings.TrimSpace(*item.PubDate)
		}

		items = append(items, models.NewsItem{
			Title:       title,
			Link:        strings.TrimSpace(*item.Link),
			PublishedAt: published,
		})
	}

	return items, nil
}

// Ensure Client implements NewsClient
var _ interfaces.NewsClient = (*Client)(nil)
