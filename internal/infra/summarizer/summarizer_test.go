package summarizer

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feed-digest/internal/config"
	"feed-digest/internal/domain/entity"
	"feed-digest/internal/infra/ollama"
)

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("The quick brown fox.")

	assert.Contains(t, prompt, "## INSTRUCTION")
	assert.Contains(t, prompt, "1-2 sentences")
	assert.Contains(t, prompt, "The quick brown fox.")
	assert.Contains(t, prompt, "## RULES")
}

func TestBuildPromptTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("a", maxContentChars+100)

	prompt := buildPrompt(long)

	assert.NotContains(t, prompt, long)
	assert.Contains(t, prompt, strings.Repeat("a", maxContentChars)+"...")
}

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "single line unchanged",
			raw:  "A concise summary.",
			want: "A concise summary.",
		},
		{
			name: "blank lines removed",
			raw:  "First point.\n\n\nSecond point.",
			want: "First point.\nSecond point.",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  padded summary  \n",
			want: "padded summary",
		},
		{
			name: "only whitespace yields empty",
			raw:  " \n\t\n ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanSummary(tt.raw))
		})
	}
}

func TestNoOpSummarize(t *testing.T) {
	noop := NewNoOp()

	short, err := noop.Summarize(context.Background(), "short content")
	require.NoError(t, err)
	assert.Equal(t, "short content", short)

	long := strings.Repeat("x", 600)
	truncated, err := noop.Summarize(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 500)+"...", truncated)
}

func backendConfig(t *testing.T, serverURL string) config.OllamaConfig {
	t.Helper()

	parsed, err := url.Parse(serverURL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(parsed.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return config.OllamaConfig{Host: host, Port: port, Model: "test-model"}
}

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{{
			"index": 0,
			"message": map[string]any{
				"role":    "assistant",
				"content": content,
			},
			"finish_reason": "stop",
		}},
	}
}

func TestOllamaSummarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("\nThe article explains X.\n\n"))
	}))
	defer server.Close()

	s := NewOllama(ollama.NewClient(backendConfig(t, server.URL)))

	summary, err := s.Summarize(context.Background(), "article body")
	require.NoError(t, err)
	assert.Equal(t, "The article explains X.", summary)
}

func TestOllamaSummarizeEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("  \n  "))
	}))
	defer server.Close()

	s := NewOllama(ollama.NewClient(backendConfig(t, server.URL)))

	_, err := s.Summarize(context.Background(), "article body")
	assert.ErrorIs(t, err, entity.ErrEmptySummary)
}

func TestOllamaSummarizeBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"backend exploded","type":"server_error"}}`))
	}))
	defer server.Close()

	s := NewOllama(ollama.NewClient(backendConfig(t, server.URL)))

	_, err := s.Summarize(context.Background(), "article body")
	require.Error(t, err)

	var backendErr *ollama.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, ollama.ErrorKindAPI, backendErr.Kind)
}
