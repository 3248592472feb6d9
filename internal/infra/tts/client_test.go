package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feed-digest/internal/config"
)

func speechConfig(endpointURL string) config.SpeechConfig {
	return config.SpeechConfig{
		Enabled:        true,
		EndpointURL:    endpointURL,
		Model:          "kokoro",
		Voice:          "af_sky",
		ResponseFormat: "mp3",
		Speed:          1.0,
	}
}

func TestRenderWritesAudioFile(t *testing.T) {
	audio := []byte{0xFF, 0xFB, 0x01, 0x02, 0x03}

	var gotRequest map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "digest.mp3")
	client := NewClient(speechConfig(server.URL))

	err := client.Render(context.Background(), "Headline. Summary text.", outPath)
	require.NoError(t, err)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, audio, written)

	assert.Equal(t, "kokoro", gotRequest["model"])
	assert.Equal(t, "Headline. Summary text.", gotRequest["input"])
	assert.Equal(t, "af_sky", gotRequest["voice"])
	assert.Equal(t, "mp3", gotRequest["response_format"])
	assert.Equal(t, 1.0, gotRequest["speed"])
}

func TestRenderEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "digest.mp3")
	client := NewClient(speechConfig(server.URL))

	err := client.Render(context.Background(), "some narration", outPath)
	require.Error(t, err)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no audio file should be written on failure")
}

func TestRenderUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	outPath := filepath.Join(t.TempDir(), "digest.mp3")
	client := NewClient(speechConfig(server.URL))

	err := client.Render(context.Background(), "some narration", outPath)
	assert.Error(t, err)
}
