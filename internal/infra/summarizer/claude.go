package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"feed-digest/internal/domain/entity"
)

const (
	claudeMaxTokens         = 1024
	claudeRequestsPerSecond = 2.0
	claudeBurst             = 2
)

// Claude implements the Summarizer interface using Anthropic's Claude API.
// There is no provisioning step for this backend; the model either answers or
// the article is skipped.
type Claude struct {
	client  anthropic.Client
	model   string
	limiter *RateLimiter
}

// NewClaude creates a Claude summarizer with the given API key and model.
func NewClaude(apiKey, model string) *Claude {
	slog.Info("initialized claude summarizer", slog.String("model", model))

	return &Claude{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		limiter: NewRateLimiter(claudeRequestsPerSecond, claudeBurst),
	}
}

// Summarize generates a 1-2 sentence summary of the given article content.
func (c *Claude) Summarize(ctx context.Context, content string) (string, error) {
	if err := c.limiter.Allow(ctx); err != nil {
		return "", err
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildPrompt(content)),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api: %w", err)
	}

	if len(message.Content) == 0 {
		return "", entity.ErrEmptySummary
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	summary := cleanSummary(textBlock.Text)
	if summary == "" {
		return "", entity.ErrEmptySummary
	}
	return summary, nil
}
