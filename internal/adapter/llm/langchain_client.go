package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"studion/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LangchainClient sends prompts through any langchaingo model (ollama,
// openai). Every call is bounded by the configured timeout.
type LangchainClient struct {
	model   llms.Model
	timeout time.Duration
	logger  *zap.Logger
}

// NewLangchainClient wraps model as a domain.CompletionClient.
func NewLangchainClient(model llms.Model, timeout time.Duration, logger *zap.Logger) *LangchainClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LangchainClient{model: model, timeout: timeout, logger: logger}
}

// Complete implements domain.CompletionClient.
func (c *LangchainClient) Complete(ctx context.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.MaxOutputTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxOutputTokens))
	}

	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, callOpts...)
	if err != nil {
		kind := classify(ctx, err)
		c.logger.Error("LLM call failed",
			zap.String("kind", string(kind)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", domain.NewAIServiceError(kind, err)
	}
	if strings.TrimSpace(response) == "" {
		return "", domain.NewAIServiceError(domain.AIFailureServiceError, errors.New("empty completion"))
	}

	c.logger.Debug("LLM call completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(response)))
	return response, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

var _ domain.CompletionClient = (*LangchainClient)(nil)
