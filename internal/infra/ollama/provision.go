package ollama

import (
	"context"
	"fmt"
	"log/slog"

	"feed-digest/internal/domain/entity"
)

// Provisioner verifies the configured model answers a minimal probe call and
// pulls it when the backend reports it missing. The check runs exactly once,
// before any feed is processed; an unrecoverable outcome aborts the run.
type Provisioner struct {
	client *Client
}

// NewProvisioner creates a Provisioner for the given client.
func NewProvisioner(client *Client) *Provisioner {
	return &Provisioner{client: client}
}

// EnsureAvailable probes the model with a minimal chat call. On a
// model-missing response it attempts a pull and fails only if the pull itself
// fails. Any other probe error is fatal.
func (p *Provisioner) EnsureAvailable(ctx context.Context) error {
	logger := slog.Default()
	model := p.client.Model()

	_, err := p.client.Chat(ctx, "Test")
	if err == nil {
		return nil
	}

	if !IsModelMissing(err) {
		return fmt.Errorf("probe model %q: %w", model, err)
	}

	logger.Warn("model not found, attempting to pull", slog.String("model", model))
	if pullErr := p.client.Pull(ctx); pullErr != nil {
		logger.Error("failed to pull model",
			slog.String("model", model),
			slog.Any("error", pullErr))
		return fmt.Errorf("pull model %q: %w: %w", model, entity.ErrModelUnavailable, pullErr)
	}

	logger.Info("successfully pulled model", slog.String("model", model))
	return nil
}
