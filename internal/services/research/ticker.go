package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/interfaces"
	"github.com/brfialho/pesquisa/internal/models"
)

// tickerPromptTemplate instructs the backend to answer with a bare
// ticker, with in-prompt examples disambiguating B3 vs international
// exchange conventions.
const tickerPromptTemplate = `Você é um especialista em mercado de ações.

Identifique o TICKER (símbolo da ação) da empresa: %s

Se for empresa brasileira, forneça o ticker da B3 (ex: PETR4.SA, VALE3.SA, ITUB4.SA)
Se for empresa internacional, forneça o ticker da bolsa principal (ex: AAPL, MSFT, GOOGL)

Responda APENAS com o ticker, sem explicações.

Exemplos:
- Petrobras → PETR4.SA
- Vale → VALE3.SA
- Apple → AAPL
- Microsoft → MSFT

Ticker da empresa %s:`

// TickerResolver maps a company name to an exchange symbol via the
// generation backend.
type TickerResolver struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewTickerResolver creates a ticker resolver
func NewTickerResolver(client interfaces.GeminiClient, logger *common.Logger) *TickerResolver {
	return &TickerResolver{
		gemini: client,
		logger: logger,
	}
}

// Resolve returns the symbol for a company, or an empty TickerSymbol
// when generation failed or produced nothing usable. The backend's
// answer is trusted as-is; no exchange-list validation is applied.
func (r *TickerResolver) Resolve(ctx context.Context, query models.CompanyQuery) models.TickerSymbol {
	prompt := fmt.Sprintf(tickerPromptTemplate, query.String(), query.String())

	raw, err := r.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		r.logger.Warn().Err(err).Str("company", query.String()).Msg("Ticker resolution failed (continuing)")
		return models.TickerSymbol{}
	}

	return models.TickerSymbol{Value: CleanTicker(raw)}
}

// CleanTicker post-processes a raw backend answer into a bare symbol:
// markdown emphasis and backticks are stripped, and only the first
// whitespace-delimited token survives. Guards against verbose answers
// like "**AAPL** (Apple Inc.)".
func CleanTicker(raw string) string {
	cleaned := strings.ReplaceAll(raw, "*", "")
	cleaned = strings.ReplaceAll(cleaned, "`", "")

	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Ensure TickerResolver implements the service contract
var _ interfaces.TickerResolver = (*TickerResolver)(nil)
