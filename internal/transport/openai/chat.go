package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/shoplight/shoplight/internal/domain"
	"github.com/shoplight/shoplight/internal/metrics"
)

// ChatClient is a chat completion provider using the OpenAI API.
type ChatClient struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// ChatConfig holds the chat completion provider settings.
type ChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewChatClient creates an OpenAI chat completion provider.
func NewChatClient(cfg *ChatConfig) *ChatClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &ChatClient{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: "openai",
		logger:   cfg.Logger,
	}
}

// Generate implements domain.Generator via a single-turn chat completion.
func (c *ChatClient) Generate(ctx context.Context, prompt string) (domain.GenerationResult, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		return domain.GenerationResult{}, parseProviderError(err, "chat", domain.ErrGenerationProviderError)
	}

	if len(resp.Choices) == 0 {
		metrics.GenerationRequestsTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		return domain.GenerationResult{}, fmt.Errorf("empty chat response: %w", domain.ErrGenerationProviderError)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(c.provider, c.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(c.provider, c.model).Observe(duration.Seconds())

	usage := resp.Usage
	if usage.TotalTokens > 0 {
		metrics.GenerationTokensTotal.WithLabelValues(c.provider, c.model, "prompt").Add(float64(usage.PromptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(c.provider, c.model, "completion").Add(float64(usage.CompletionTokens))
		metrics.GenerationTokensTotal.WithLabelValues(c.provider, c.model, "total").Add(float64(usage.TotalTokens))
	}

	return domain.GenerationResult{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}, nil
}
