// Package tts renders digest narration text to an audio file through an
// OpenAI-compatible speech endpoint, such as a local Kokoro or openedai-speech
// server. Audio rendering is best effort: the pipeline treats a failure here
// as a warning, never as a run failure.
package tts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"feed-digest/internal/config"
)

// Client renders text to speech against one configured endpoint.
type Client struct {
	speech *openai.Client
	cfg    config.SpeechConfig
}

// NewClient creates a speech client from the text-to-speech configuration.
// The endpoint URL is the OpenAI-compatible base URL of the speech server,
// e.g. "http://localhost:8880/v1".
func NewClient(cfg config.SpeechConfig) *Client {
	clientConfig := openai.DefaultConfig("")
	clientConfig.BaseURL = cfg.EndpointURL

	return &Client{
		speech: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

// Render synthesizes the given text and streams the binary audio response
// into outPath. The file is only created once the endpoint has accepted the
// request.
func (c *Client) Render(ctx context.Context, text, outPath string) error {
	resp, err := c.speech.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.cfg.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(c.cfg.Voice),
		ResponseFormat: openai.SpeechResponseFormat(c.cfg.ResponseFormat),
		Speed:          c.cfg.Speed,
	})
	if err != nil {
		return fmt.Errorf("speech request: %w", err)
	}
	defer func() { _ = resp.Close() }()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer func() { _ = out.Close() }()

	written, err := io.Copy(out, resp)
	if err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}

	slog.Info("rendered audio",
		slog.String("path", outPath),
		slog.Int64("bytes", written))

	return nil
}
