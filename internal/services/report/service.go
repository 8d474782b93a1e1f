package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/interfaces"
	"github.com/brfialho/pesquisa/internal/models"
)

// DefaultOutputDir is where reports are written when no directory is
// configured.
const DefaultOutputDir = "relatorios"

// Service formats research reports and persists them as UTF-8 text
// files under the output directory.
type Service struct {
	outputDir string
	logger    *common.Logger
}

// NewService creates a report service
func NewService(outputDir string, logger *common.Logger) *Service {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &Service{
		outputDir: outputDir,
		logger:    logger,
	}
}

// Format renders the report as a plain-text document.
func (s *Service) Format(report *models.ResearchReport) string {
	return FormatReport(report)
}

// Save writes the formatted report under a filename derived from the
// company name, creating the output directory if absent. The returned
// path is relative to the working directory. A write failure is
// returned to the caller once; there is no retry.
func (s *Service) Save(report *models.ResearchReport) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(s.outputDir, SanitizeFilename(report.Company)+".txt")

	if err := os.WriteFile(path, []byte(FormatReport(report)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	s.logger.Info().Str("path", path).Str("company", report.Company).Msg("Report saved")
	return path, nil
}

// SanitizeFilename derives a safe file stem from a company name:
// spaces become underscores and path separators become dashes.
func SanitizeFilename(name string) string {
	sanitized := strings.ReplaceAll(name, " ", "_")
	sanitized = strings.ReplaceAll(sanitized, "/", "-")
	sanitized = strings.ReplaceAll(sanitized, "\\", "-")
	return sanitized
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
