// Package models defines data structures for Pesquisa
package models

import (
	"fmt"
	"strings"
	"time"
)

// CompanyQuery is a validated company display name.
type CompanyQuery struct {
	name string
}

// NewCompanyQuery validates and returns a company query.
// Empty or whitespace-only names are rejected.
func NewCompanyQuery(name string) (CompanyQuery, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return CompanyQuery{}, fmt.Errorf("company name must not be empty")
	}
	return CompanyQuery{name: trimmed}, nil
}

// String returns the company display name.
func (q CompanyQuery) String() string {
	return q.name
}

// CompanySummary is the result of the executive summary stage.
// Succeeded is false only when the generation call itself failed; a
// degraded answer from the backend still counts as text.
type CompanySummary struct {
	Succeeded bool   `json:"succeeded"`
	Text      string `json:"text"`
	Company   string `json:"company"`
}

// NewsItem represents a single headline from the news feed.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"published_at"`
}

// NewsDateUnavailable is the display text used when a headline carries
// no publish date.
const NewsDateUnavailable = "Data não disponível"

// TickerSymbol is an exchange symbol resolved for a company.
// An empty value means the symbol could not be resolved.
type TickerSymbol struct {
	Value string `json:"value"`
}

// IsEmpty reports whether no symbol was resolved.
func (t TickerSymbol) IsEmpty() bool {
	return t.Value == ""
}

// Quote holds current price data for a ticker. Price 0 with currency
// "N/A" is the sentinel for an unavailable quote.
type Quote struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	DisplayName string  `json:"display_name"`
}

// SentinelQuote returns the "no data" quote for a symbol.
func SentinelQuote(symbol string) Quote {
	return Quote{
		Symbol:      symbol,
		Price:       0,
		Currency:    "N/A",
		DisplayName: symbol,
	}
}

// HasPrice reports whether the quote carries a real market price.
func (q Quote) HasPrice() bool {
	return q.Price > 0
}

// ResearchReport aggregates the output of one pipeline run.
type ResearchReport struct {
	RunID       string         `json:"run_id"`
	Company     string         `json:"company"`
	Summary     CompanySummary `json:"summary"`
	News        []NewsItem     `json:"news"`
	Ticker      TickerSymbol   `json:"ticker"`
	Quote       Quote          `json:"quote"`
	GeneratedAt time.Time      `json:"generated_at"`
}
