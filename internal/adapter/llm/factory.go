// Package llm adapts the supported AI providers to domain.CompletionClient.
package llm

import (
	"context"
	"fmt"
	"io"

	"studion/internal/config"
	"studion/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewFromConfig builds the completion client for the configured provider.
// The returned closer must be closed on shutdown.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (domain.CompletionClient, io.Closer, error) {
	switch cfg.Provider {
	case "ollama":
		model, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewLangchainClient(model, cfg.Timeout, logger), nopCloser{}, nil

	case "openai":
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return NewLangchainClient(model, cfg.Timeout, logger), nopCloser{}, nil

	case "gemini":
		client, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.Timeout, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
