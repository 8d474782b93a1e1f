// Package research implements the company research pipeline
package research

import (
	"context"
	"errors"
	"fmt"

	"github.com/brfialho/pesquisa/internal/clients/gemini"
	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/interfaces"
	"github.com/brfialho/pesquisa/internal/models"
)

// summaryPromptTemplate asks for the executive summary across the four
// mandated topics, bounded to 500 words, in Brazilian Portuguese.
const summaryPromptTemplate = `Você é um analista financeiro especializado em Investment Banking.

Forneça um RESUMO EXECUTIVO PROFISSIONAL sobre a empresa: %s

Inclua obrigatoriamente:

1. SETOR DE ATUAÇÃO: Qual o principal setor e indústria
2. BREVE HISTÓRICO: Fundação, evolução, marcos importantes
3. PRINCIPAIS PRODUTOS/SERVIÇOS: O que a empresa oferece
4. POSIÇÃO NO MERCADO: Relevância e competitividade

Responda em português brasileiro de forma objetiva e estruturada (máximo 500 palavras).`

// SummaryGenerator produces the executive summary stage of the pipeline.
type SummaryGenerator struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewSummaryGenerator creates a summary generator
func NewSummaryGenerator(client interfaces.GeminiClient, logger *common.Logger) *SummaryGenerator {
	return &SummaryGenerator{
		gemini: client,
		logger: logger,
	}
}

// Summarize generates the executive summary for a company. It always
// returns a usable result: Succeeded is false only when the generation
// call itself failed, in which case Text carries the bounded diagnostic.
func (g *SummaryGenerator) Summarize(ctx context.Context, query models.CompanyQuery) models.CompanySummary {
	prompt := fmt.Sprintf(summaryPromptTemplate, query.String())

	text, err := g.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		g.logger.Warn().Err(err).Str("company", query.String()).Msg("Summary generation failed (continuing)")

		var genErr *gemini.GenerationError
		if errors.As(err, &genErr) {
			text = genErr.ErrorText()
		} else {
			text = "Erro ao processar: " + gemini.Truncate(err.Error(), gemini.MaxErrorLen)
		}

		return models.CompanySummary{
			Succeeded: false,
			Text:      text,
			Company:   query.String(),
		}
	}

	if text == "" {
		text = "Análise gerada com sucesso."
	}

	return models.CompanySummary{
		Succeeded: true,
		Text:      text,
		Company:   query.String(),
	}
}

// Ensure SummaryGenerator implements the service contract
var _ interfaces.SummaryGenerator = (*SummaryGenerator)(nil)
