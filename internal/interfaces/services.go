// Package interfaces defines service contracts for Pesquisa
package interfaces

import (
	"context"

	"github.com/brfialho/pesquisa/internal/models"
)

// SummaryGenerator produces the executive summary for a company.
type SummaryGenerator interface {
	// Summarize always returns a summary; Succeeded is false only when
	// the generation call itself failed.
	Summarize(ctx context.Context, query models.CompanyQuery) models.CompanySummary
}

// TickerResolver maps a company name to an exchange symbol.
type TickerResolver interface {
	// Resolve returns the resolved symbol, or an empty TickerSymbol when
	// resolution failed. It never returns an error.
	Resolve(ctx context.Context, query models.CompanyQuery) models.TickerSymbol
}

// ResearchService runs the full research pipeline for a company.
type ResearchService interface {
	// Run executes all stages and always returns a complete report,
	// regardless of how many sources failed.
	Run(ctx context.Context, query models.CompanyQuery) *models.ResearchReport
}

// ReportService formats and persists research reports.
type ReportService interface {
	// Format renders the report as a plain-text document.
	Format(report *models.ResearchReport) string

	// Save writes the formatted report to the output directory and
	// returns the file path.
	Save(report *models.ResearchReport) (string, error)
}
