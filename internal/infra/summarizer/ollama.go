package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"feed-digest/internal/domain/entity"
	"feed-digest/internal/infra/ollama"
)

// ollamaRequestsPerSecond paces summarization calls against a local backend.
const (
	ollamaRequestsPerSecond = 1.0
	ollamaBurst             = 1
)

// Ollama implements the Summarizer interface over the Ollama backend client.
// Each Summarize call is a single attempt; the designed policy is no retries
// and no backoff.
type Ollama struct {
	client  *ollama.Client
	limiter *RateLimiter
}

// NewOllama creates an Ollama summarizer around the given backend client.
func NewOllama(client *ollama.Client) *Ollama {
	slog.Info("initialized ollama summarizer",
		slog.String("model", client.Model()))

	return &Ollama{
		client:  client,
		limiter: NewRateLimiter(ollamaRequestsPerSecond, ollamaBurst),
	}
}

// Summarize generates a 1-2 sentence summary of the given article content.
func (o *Ollama) Summarize(ctx context.Context, content string) (string, error) {
	if err := o.limiter.Allow(ctx); err != nil {
		return "", err
	}

	raw, err := o.client.Chat(ctx, buildPrompt(content))
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	summary := cleanSummary(raw)
	if summary == "" {
		return "", entity.ErrEmptySummary
	}
	return summary, nil
}
