package research

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/interfaces"
	"github.com/brfialho/pesquisa/internal/models"
)

// Hooks lets a caller observe each stage result as the pipeline
// progresses. All funcs are optional. Hooks fire sequentially after the
// fan-in join, in report section order, never concurrently.
type Hooks struct {
	OnSummary func(models.CompanySummary)
	OnNews    func([]models.NewsItem)
	OnTicker  func(models.TickerSymbol)
	OnQuote   func(models.Quote)
}

// Service orchestrates the research pipeline: summary, news, and ticker
// resolution fan out concurrently; the quote stage is gated behind a
// non-empty resolved ticker.
type Service struct {
	summary  interfaces.SummaryGenerator
	resolver interfaces.TickerResolver
	news     interfaces.NewsClient
	quote    interfaces.QuoteClient
	hooks    Hooks
	logger   *common.Logger
}

// NewService creates a research service
func NewService(
	summary interfaces.SummaryGenerator,
	resolver interfaces.TickerResolver,
	news interfaces.NewsClient,
	quote interfaces.QuoteClient,
	hooks Hooks,
	logger *common.Logger,
) *Service {
	return &Service{
		summary:  summary,
		resolver: resolver,
		news:     news,
		quote:    quote,
		hooks:    hooks,
		logger:   logger,
	}
}

// Run executes the full pipeline for a company. Every stage has a total
// contract, so Run always returns a complete report: no combination of
// source failures can abort it. Each stage owns its own timeout; a slow
// branch does not cancel its siblings.
func (s *Service) Run(ctx context.Context, query models.CompanyQuery) *models.ResearchReport {
	runID := uuid.NewString()
	logger := &common.Logger{Logger: s.logger.With().Str("run_id", runID).Logger()}

	logger.Info().Str("company", query.String()).Msg("Starting research pipeline")

	var (
		summary models.CompanySummary
		news    []models.NewsItem
		ticker  models.TickerSymbol
	)

	// Summary, news, and ticker have no data dependency on one another.
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		summary = s.summary.Summarize(ctx, query)
	}()

	go func() {
		defer wg.Done()
		news = s.news.FetchNews(ctx, query)
	}()

	go func() {
		defer wg.Done()
		ticker = s.resolver.Resolve(ctx, query)
	}()

	wg.Wait()

	if s.hooks.OnSummary != nil {
		s.hooks.OnSummary(summary)
	}
	if s.hooks.OnNews != nil {
		s.hooks.OnNews(news)
	}
	if s.hooks.OnTicker != nil {
		s.hooks.OnTicker(ticker)
	}

	// The quote stage strictly depends on a resolved symbol.
	var quote models.Quote
	if ticker.IsEmpty() {
		logger.Info().Msg("Ticker not resolved, skipping quote")
		quote = models.SentinelQuote("")
	} else {
		quote = s.quote.FetchQuote(ctx, ticker)
	}

	if s.hooks.OnQuote != nil {
		s.hooks.OnQuote(quote)
	}

	logger.Info().
		Bool("summary_ok", summary.Succeeded).
		Int("news_items", len(news)).
		Str("ticker", ticker.Value).
		Bool("quote_ok", quote.HasPrice()).
		Msg("Research pipeline complete")

	return &models.ResearchReport{
		RunID:       runID,
		Company:     query.String(),
		Summary:     summary,
		News:        news,
		Ticker:      ticker,
		Quote:       quote,
		GeneratedAt: time.Now(),
	}
}

// Ensure Service implements ResearchService
var _ interfaces.ResearchService = (*Service)(nil)
