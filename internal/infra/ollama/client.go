// Package ollama provides the client for the Ollama summarization backend.
// Chat calls go through the backend's OpenAI-compatible endpoint; model pulls
// use the native Ollama API. All failures surface as *BackendError with a
// closed error-kind enumeration so callers never inspect message strings.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"feed-digest/internal/config"
)

// ErrorKind classifies a backend failure.
type ErrorKind int

const (
	// ErrorKindModelMissing means the backend reported the requested model
	// as not found. The provisioner reacts to this kind by pulling.
	ErrorKindModelMissing ErrorKind = iota

	// ErrorKindAPI covers every other error response from the backend.
	ErrorKindAPI

	// ErrorKindTransport covers network-level failures before any backend
	// response was received.
	ErrorKindTransport
)

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindModelMissing:
		return "model_missing"
	case ErrorKindAPI:
		return "api"
	case ErrorKindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// BackendError is a classified backend failure.
type BackendError struct {
	Kind  ErrorKind
	Model string
	Err   error
}

// Error returns a formatted message including the kind and model.
func (e *BackendError) Error() string {
	return fmt.Sprintf("ollama backend (%s, model %s): %v", e.Kind, e.Model, e.Err)
}

// Unwrap returns the underlying cause.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsModelMissing reports whether err is a BackendError of kind model-missing.
func IsModelMissing(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == ErrorKindModelMissing
}

// Client talks to one Ollama instance about one configured model.
type Client struct {
	chat       *openai.Client
	httpClient *http.Client
	apiURL     string
	model      string
}

// NewClient creates a Client from the backend configuration. Chat requests
// target the OpenAI-compatible /v1 endpoint; pulls target the native API.
func NewClient(cfg config.OllamaConfig) *Client {
	clientConfig := openai.DefaultConfig("")
	clientConfig.BaseURL = cfg.BaseURL()

	return &Client{
		chat:       openai.NewClientWithConfig(clientConfig),
		httpClient: &http.Client{},
		apiURL:     cfg.APIURL(),
		model:      cfg.Model,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Chat issues a single chat completion with one user message and returns the
// raw response text. One attempt, no retry.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", c.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &BackendError{
			Kind:  ErrorKindAPI,
			Model: c.model,
			Err:   errors.New("empty chat response"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps a go-openai error onto the closed error-kind enumeration.
// A 404 from the backend means the model is not loaded.
func (c *Client) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := ErrorKindAPI
		if apiErr.HTTPStatusCode == http.StatusNotFound {
			kind = ErrorKindModelMissing
		}
		return &BackendError{Kind: kind, Model: c.model, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &BackendError{Kind: ErrorKindAPI, Model: c.model, Err: err}
	}

	return &BackendError{Kind: ErrorKindTransport, Model: c.model, Err: err}
}

type pullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

type pullResponse struct {
	Status string `json:"status"`
}

// Pull downloads the configured model through the native Ollama API. The
// request is non-streaming; the call blocks until the pull finishes.
func (c *Client) Pull(ctx context.Context) error {
	payload, err := json.Marshal(pullRequest{Model: c.model, Stream: false})
	if err != nil {
		return fmt.Errorf("marshal pull request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/api/pull", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create pull request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &BackendError{Kind: ErrorKindTransport, Model: c.model, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read pull response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &BackendError{
			Kind:  ErrorKindAPI,
			Model: c.model,
			Err:   fmt.Errorf("pull returned status %s: %s", resp.Status, bytes.TrimSpace(body)),
		}
	}

	var parsed pullResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("parse pull response: %w", err)
	}
	if parsed.Status != "success" {
		return &BackendError{
			Kind:  ErrorKindAPI,
			Model: c.model,
			Err:   fmt.Errorf("pull finished with status %q", parsed.Status),
		}
	}

	return nil
}
