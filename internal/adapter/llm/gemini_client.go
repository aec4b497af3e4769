package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studion/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// contentGenerator is the part of *genai.GenerativeModel the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient sends prompts to Google Gemini.
type GeminiClient struct {
	client  *genai.Client
	timeout time.Duration
	logger  *zap.Logger
	// newModel returns a model configured for one call. GenerativeModel
	// settings are not safe to change concurrently, so each call gets its own.
	newModel func(opts domain.CompletionOptions) contentGenerator
}

// NewGeminiClient connects to Gemini with apiKey and uses modelName for every call.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := &GeminiClient{client: client, timeout: timeout, logger: logger}
	c.newModel = func(opts domain.CompletionOptions) contentGenerator {
		model := client.GenerativeModel(modelName)
		model.SetTemperature(float32(opts.Temperature))
		if opts.MaxOutputTokens > 0 {
			model.SetMaxOutputTokens(int32(opts.MaxOutputTokens))
		}
		return model
	}
	logger.Info("Initialized Gemini client", zap.String("model", modelName))
	return c, nil
}

// Complete implements domain.CompletionClient.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.newModel(opts).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		kind := classify(ctx, err)
		c.logger.Error("Gemini call failed",
			zap.String("kind", string(kind)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", domain.NewAIServiceError(kind, err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", domain.NewAIServiceError(domain.AIFailureServiceError, errors.New("gemini returned no text"))
	}
	c.logger.Debug("Gemini call completed", zap.Duration("elapsed", time.Since(start)), zap.Int("response_chars", len(text)))
	return text, nil
}

// Close releases the underlying gRPC connection.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

var _ domain.CompletionClient = (*GeminiClient)(nil)
