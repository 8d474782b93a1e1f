// Package interfaces defines service contracts for Pesquisa
package interfaces

import (
	"context"

	"github.com/brfialho/pesquisa/internal/models"
)

// GeminiClient provides access to the generative text backend
type GeminiClient interface {
	// GenerateContent generates text from a fully rendered prompt. Any
	// failure is returned as a bounded error value, never a panic or an
	// unbounded backend diagnostic.
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// NewsClient fetches recent headlines for a query.
type NewsClient interface {
	// FetchNews returns at most five headlines in feed order. It never
	// fails the caller: any error yields an empty slice.
	FetchNews(ctx context.Context, query models.CompanyQuery) []models.NewsItem
}

// QuoteClient fetches current price data for a ticker.
type QuoteClient interface {
	// FetchQuote returns the current quote for a ticker, or the sentinel
	// quote when the symbol is empty, unlisted, or the endpoint fails.
	FetchQuote(ctx context.Context, ticker models.TickerSymbol) models.Quote
}
