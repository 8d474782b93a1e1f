package research

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brfialho/pesquisa/internal/clients/gemini"
	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/models"
)

// fakeGemini routes every generation call through a single func so a
// test can branch on prompt content.
type fakeGemini struct {
	fn func(prompt string) (string, error)
}

func (f *fakeGemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f.fn(prompt)
}

type fakeNews struct {
	items []models.NewsItem
}

func (f *fakeNews) FetchNews(ctx context.Context, query models.CompanyQuery) []models.NewsItem {
	return f.items
}

type fakeQuote struct {
	calls int64
	quote models.Quote
}

func (f *fakeQuote) FetchQuote(ctx context.Context, ticker models.TickerSymbol) models.Quote {
	atomic.AddInt64(&f.calls, 1)
	return f.quote
}

func mustQuery(t *testing.T, name string) models.CompanyQuery {
	t.Helper()
	q, err := models.NewCompanyQuery(name)
	if err != nil {
		t.Fatalf("NewCompanyQuery(%q): %v", name, err)
	}
	return q
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// isTickerPrompt distinguishes the resolver's prompt from the summary
// generator's.
func isTickerPrompt(prompt string) bool {
	return strings.Contains(prompt, "Identifique o TICKER")
}

func newTestService(g *fakeGemini, n *fakeNews, q *fakeQuote, hooks Hooks) *Service {
	logger := common.NewSilentLogger()
	return NewService(
		NewSummaryGenerator(g, logger),
		NewTickerResolver(g, logger),
		n, q, hooks, logger,
	)
}

func TestRun_AllSourcesSucceed(t *testing.T) {
	g := &fakeGemini{fn: func(prompt string) (string, error) {
		if isTickerPrompt(prompt) {
			return "PETR4.SA", nil
		}
		return "Resumo executivo da Petrobras.", nil
	}}
	n := &fakeNews{items: []models.NewsItem{
		{Title: "Manchete", Link: "https://example.com/1", PublishedAt: "hoje"},
	}}
	q := &fakeQuote{quote: models.Quote{Symbol: "PETR4.SA", Price: 38.52, Currency: "BRL", DisplayName: "PETR4.SA"}}

	result := newTestService(g, n, q, Hooks{}).Run(context.Background(), mustQuery(t, "Petrobras"))

	require.NotNil(t, result)
	assert.True(t, result.Summary.Succeeded)
	assert.Equal(t, "Resumo executivo da Petrobras.", result.Summary.Text)
	assert.Len(t, result.News, 1)
	assert.Equal(t, "PETR4.SA", result.Ticker.Value)
	assert.True(t, result.Quote.HasPrice())
	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.GeneratedAt.IsZero())
	assert.Equal(t, int64(1), atomic.LoadInt64(&q.calls))
}

func TestRun_SummaryFailsOthersSucceed(t *testing.T) {
	// The generation backend fails for the summary but still resolves
	// the ticker; news is independent and succeeds.
	g := &fakeGemini{fn: func(prompt string) (string, error) {
		if isTickerPrompt(prompt) {
			return "PETR4.SA", nil
		}
		return "", &gemini.GenerationError{Message: "backend down"}
	}}
	n := &fakeNews{items: []models.NewsItem{
		{Title: "Manchete 1", Link: "https://example.com/1", PublishedAt: "hoje"},
		{Title: "Manchete 2", Link: "https://example.com/2", PublishedAt: "ontem"},
	}}
	q := &fakeQuote{quote: models.Quote{Symbol: "PETR4.SA", Price: 38.52, Currency: "BRL", DisplayName: "PETR4.SA"}}

	result := newTestService(g, n, q, Hooks{}).Run(context.Background(), mustQuery(t, "Petrobras"))

	require.NotNil(t, result)
	assert.False(t, result.Summary.Succeeded)
	assert.Equal(t, "Erro na geração: backend down", result.Summary.Text)
	assert.Len(t, result.News, 2)
	assert.Equal(t, "PETR4.SA", result.Ticker.Value)
	assert.True(t, result.Quote.HasPrice(), "quote stage must still run after summary failure")
}

func TestRun_EmptyTickerSkipsQuoteStage(t *testing.T) {
	g := &fakeGemini{fn: func(prompt string) (string, error) {
		if isTickerPrompt(prompt) {
			return "", &gemini.GenerationError{Message: "no answer"}
		}
		return "Resumo.", nil
	}}
	n := &fakeNews{}
	q := &fakeQuote{quote: models.Quote{Symbol: "X", Price: 1, Currency: "USD"}}

	result := newTestService(g, n, q, Hooks{}).Run(context.Background(), mustQuery(t, "Padaria do Zé"))

	require.NotNil(t, result)
	assert.True(t, result.Ticker.IsEmpty())
	assert.Equal(t, int64(0), atomic.LoadInt64(&q.calls), "quote client must not be called for an empty ticker")
	assert.Equal(t, models.SentinelQuote(""), result.Quote)
}

func TestRun_EverySourceFailsStillAssembles(t *testing.T) {
	g := &fakeGemini{fn: func(prompt string) (string, error) {
		return "", &gemini.GenerationError{Message: "down"}
	}}
	n := &fakeNews{}
	q := &fakeQuote{}

	result := newTestService(g, n, q, Hooks{}).Run(context.Background(), mustQuery(t, "Fantasma SA"))

	require.NotNil(t, result)
	assert.False(t, result.Summary.Succeeded)
	assert.Empty(t, result.News)
	assert.True(t, result.Ticker.IsEmpty())
	assert.Equal(t, models.SentinelQuote(""), result.Quote)
}

func TestRun_HooksFireInSectionOrder(t *testing.T) {
	g := &fakeGemini{fn: func(prompt string) (string, error) {
		if isTickerPrompt(prompt) {
			return "VALE3.SA", nil
		}
		return "Resumo.", nil
	}}
	n := &fakeNews{items: []models.NewsItem{{Title: "x", Link: "y"}}}
	q := &fakeQuote{quote: models.Quote{Symbol: "VALE3.SA", Price: 60, Currency: "BRL"}}

	var order []string
	hooks := Hooks{
		OnSummary: func(models.CompanySummary) { order = append(order, "summary") },
		OnNews:    func([]models.NewsItem) { order = append(order, "news") },
		OnTicker:  func(models.TickerSymbol) { order = append(order, "ticker") },
		OnQuote:   func(models.Quote) { order = append(order, "quote") },
	}

	newTestService(g, n, q, hooks).Run(context.Background(), mustQuery(t, "Vale"))

	assert.Equal(t, []string{"summary", "news", "ticker", "quote"}, order)
}
