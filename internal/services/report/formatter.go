// Package report provides research report formatting and persistence
package report

import (
	"fmt"
	"strings"

	"github.com/brfialho/pesquisa/internal/models"
)

const (
	sectionRule = "================================================================================"

	systemName = "Pesquisa + Google Gemini"

	// Section placeholders, matching the persisted artifact's language.
	summaryUnavailable = "Não disponível"
	noNewsAvailable    = "Nenhuma notícia disponível."
	quoteUnavailable   = "Cotação não disponível."
	tickerNotFound     = "Ticker não encontrado."
)

// FormatReport renders the fixed-section plain-text document for a
// report. The output is deterministic: identical report data yields
// byte-identical text (the timestamp is read from the report, not the
// clock).
func FormatReport(r *models.ResearchReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString(sectionRule + "\n")
	sb.WriteString(fmt.Sprintf("RELATÓRIO DE PESQUISA AUTOMATIZADA: %s\n", strings.ToUpper(r.Company)))
	sb.WriteString(sectionRule + "\n\n")
	sb.WriteString(fmt.Sprintf("Data/Hora: %s\n", r.GeneratedAt.Format("02/01/2006 15:04:05")))
	sb.WriteString(fmt.Sprintf("Sistema: %s\n\n", systemName))

	// Section A: executive summary
	sb.WriteString(sectionRule + "\n")
	sb.WriteString("A. RESUMO/DESCRIÇÃO DA EMPRESA\n")
	sb.WriteString(sectionRule + "\n\n")
	summary := r.Summary.Text
	if summary == "" {
		summary = summaryUnavailable
	}
	sb.WriteString(summary + "\n\n")

	// Section B: recent headlines
	sb.WriteString(sectionRule + "\n")
	sb.WriteString("B. ÚLTIMAS NOTÍCIAS RELEVANTES\n")
	sb.WriteString(sectionRule + "\n\n")
	if len(r.News) > 0 {
		for i, item := range r.News {
			sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, item.Title))
			if item.PublishedAt != "" {
				sb.WriteString(fmt.Sprintf("    Data: %s\n", item.PublishedAt))
			}
			if item.Link != "" {
				sb.WriteString(fmt.Sprintf("    Link: %s\n", item.Link))
			}
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(noNewsAvailable + "\n\n")
	}

	// Section C: ticker and quote
	sb.WriteString(sectionRule + "\n")
	sb.WriteString("C. VALOR DA AÇÃO (COTAÇÃO ATUAL)\n")
	sb.WriteString(sectionRule + "\n\n")
	if !r.Ticker.IsEmpty() {
		sb.WriteString(fmt.Sprintf("Ticker: %s\n", r.Ticker.Value))
		if r.Quote.HasPrice() {
			sb.WriteString(fmt.Sprintf("Preço Atual: %s %.2f\n", r.Quote.Currency, r.Quote.Price))
		} else {
			sb.WriteString(quoteUnavailable + "\n")
		}
	} else {
		sb.WriteString(tickerNotFound + "\n")
	}

	// Footer
	sb.WriteString("\n" + sectionRule + "\n")
	sb.WriteString(fmt.Sprintf("Relatório gerado automaticamente via %s\n", systemName))
	if r.RunID != "" {
		sb.WriteString(fmt.Sprintf("ID da execução: %s\n", r.RunID))
	}
	sb.WriteString(sectionRule + "\n")

	return sb.String()
}
