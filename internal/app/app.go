// Package app wires configuration, clients, and services together
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brfialho/pesquisa/internal/clients/gemini"
	"github.com/brfialho/pesquisa/internal/clients/gnews"
	"github.com/brfialho/pesquisa/internal/clients/yahoo"
	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/interfaces"
	"github.com/brfialho/pesquisa/internal/services/report"
	"github.com/brfialho/pesquisa/internal/services/research"
)

// App holds the initialized clients and services for one pipeline run.
type App struct {
	Config        *common.Config
	Logger        *common.Logger
	GeminiClient  interfaces.GeminiClient
	NewsClient    interfaces.NewsClient
	QuoteClient   interfaces.QuoteClient
	ReportService interfaces.ReportService

	geminiClose func() error
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, and all clients.
// configPath may be empty, in which case the default resolution logic
// is used. A missing Gemini API key is a hard error: nothing in the
// pipeline works without the generation backend.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Load configuration - check provided path, PESQUISA_CONFIG, then
	// binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("PESQUISA_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "pesquisa.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "pesquisa.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("gemini API key required (set GEMINI_API_KEY or GOOGLE_API_KEY): %w", err)
	}

	geminiClient, err := gemini.NewClient(ctx, geminiKey,
		gemini.WithModel(config.Clients.Gemini.Model),
		gemini.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	newsClient := gnews.NewClient(
		gnews.WithBaseURL(config.Clients.News.BaseURL),
		gnews.WithTimeout(config.Clients.News.GetTimeout()),
		gnews.WithRateLimit(config.Clients.News.RateLimit),
		gnews.WithLogger(logger),
	)

	quoteClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Quote.BaseURL),
		yahoo.WithTimeout(config.Clients.Quote.GetTimeout()),
		yahoo.WithRateLimit(config.Clients.Quote.RateLimit),
		yahoo.WithLogger(logger),
	)

	reportService := report.NewService(config.Report.OutputDir, logger)

	return &App{
		Config:        config,
		Logger:        logger,
		GeminiClient:  geminiClient,
		NewsClient:    newsClient,
		QuoteClient:   quoteClient,
		ReportService: reportService,
		geminiClose:   geminiClient.Close,
	}, nil
}

// BuildResearchService assembles the orchestrator with the caller's
// stage hooks (the CLI uses these to render sections as they land).
func (a *App) BuildResearchService(hooks research.Hooks) interfaces.ResearchService {
	summary := research.NewSummaryGenerator(a.GeminiClient, a.Logger)
	resolver := research.NewTickerResolver(a.GeminiClient, a.Logger)
	return research.NewService(summary, resolver, a.NewsClient, a.QuoteClient, hooks, a.Logger)
}

// Close releases client resources.
func (a *App) Close() {
	if a.geminiClose != nil {
		if err := a.geminiClose(); err != nil {
			a.Logger.Warn().Err(err).Msg("Gemini client close failed")
		}
	}
}
