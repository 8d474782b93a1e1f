// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/interfaces"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.7
	MaxOutputTokens    = 2048

	// MaxErrorLen bounds the diagnostic text carried by a GenerationError.
	MaxErrorLen = 200
)

// GenerationError is a bounded error value for a failed generation call.
// Its message is truncated so a backend stack trace never floods the
// report or the console.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %s", e.Message)
}

// ErrorText renders the error the way it appears as degraded content.
func (e *GenerationError) ErrorText() string {
	return "Erro na geração: " + e.Message
}

// newGenerationError wraps err with a truncated diagnostic.
func newGenerationError(err error) *GenerationError {
	return &GenerationError{Message: Truncate(err.Error(), MaxErrorLen)}
}

// Truncate returns s cut to at most n bytes.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Client implements the GeminiClient interface
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:      genaiClient,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		logger:      common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Close closes the client
func (c *Client) Close() error {
	// The genai client doesn't have a Close method
	return nil
}

// GenerateContent generates text from a fully rendered prompt. Any
// transport or backend failure is returned as a *GenerationError with a
// bounded diagnostic message.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	contents := genai.Text(prompt)
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](c.temperature),
		MaxOutputTokens: MaxOutputTokens,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", newGenerationError(err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return "", newGenerationError(err)
	}

	return strings.TrimSpace(text), nil
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// Ensure Client implements GeminiClient
var _ interfaces.GeminiClient = (*Client)(nil)
