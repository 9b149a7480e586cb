// Package openai implements the report condenser against any
// OpenAI-compatible chat-completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/factorvec/internal/domain"
	"github.com/kailas-cloud/factorvec/internal/metrics"
)

// systemPrompt keeps the condensed report scannable: the extraction stage
// lives off exact figures and recurring keywords, so both must survive.
const systemPrompt = "You condense company research reports. Preserve every " +
	"numeric fact verbatim (revenue, margins, growth rates, market share, " +
	"percentages, currency amounts) together with its surrounding phrase, and " +
	"keep the report's original language. Drop boilerplate and repetition of " +
	"no informational value. Reply with the condensed report only."

// Condenser shortens reports via an OpenAI-compatible chat-completions API.
type Condenser struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the condenser provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewCondenser creates a chat-completions backed report condenser.
func NewCondenser(cfg *Config) *Condenser {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Condenser{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// Condense returns a shortened report with numeric facts preserved.
func (c *Condenser) Condense(ctx context.Context, report string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: report},
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.CondenserRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		metrics.CondenserRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrCondenserProviderError)
	}

	metrics.CondenserRequestsTotal.WithLabelValues(c.model, "success").Inc()
	metrics.CondenserRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	c.logger.Debug("report condensed",
		zap.String("model", c.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Condenser) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrCondenserProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrCondenserProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("condenser API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("condenser API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("condenser request failed: %w", wrap)
}
