// Package config loads and validates the pipeline settings from a YAML file.
// All configuration is read once at startup into an explicit Config value that
// is passed into each component; there is no ambient global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend identifiers accepted by the summarizer_backend key. The noop
// backend skips model calls entirely and passes truncated article content
// through, for dry runs against real feeds without a model server.
const (
	BackendOllama = "ollama"
	BackendClaude = "claude"
	BackendNoOp   = "noop"
)

// Defaults applied when the corresponding key is absent.
const (
	DefaultNumArticles        = 5
	DefaultFeedTimeoutSeconds = 30
	DefaultOllamaHost         = "127.0.0.1"
	DefaultOllamaPort         = 11434
	DefaultSpeechFormat       = "mp3"
	DefaultSpeechSpeed        = 1.0
)

// Config is the top-level pipeline configuration.
type Config struct {
	// FeedsFile is the newline-delimited list of active feed URLs.
	FeedsFile string `yaml:"feeds_file"`

	// RemovedFeedsFile receives quarantined feed URLs at end of run.
	RemovedFeedsFile string `yaml:"removed_feeds_file"`

	// OutputFolder is where digest artifacts are written. A leading "~"
	// is expanded to the user's home directory.
	OutputFolder string `yaml:"output_folder"`

	// NumArticles caps how many entries are taken per feed, in feed order.
	NumArticles int `yaml:"num_articles"`

	// FeedTimeoutSeconds bounds a single feed fetch.
	FeedTimeoutSeconds int `yaml:"feed_timeout"`

	// SummarizerBackend selects the model backend: "ollama" (default),
	// "claude", or "noop" for model-free dry runs.
	SummarizerBackend string `yaml:"summarizer_backend"`

	Ollama       OllamaConfig `yaml:"ollama"`
	Claude       ClaudeConfig `yaml:"claude"`
	TextToSpeech SpeechConfig `yaml:"text_to_speech"`
}

// OllamaConfig identifies the Ollama summarization backend.
type OllamaConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Model string `yaml:"model"`
}

// BaseURL returns the OpenAI-compatible base URL of the backend.
func (c OllamaConfig) BaseURL() string {
	return fmt.Sprintf("http://%s:%d/v1", c.Host, c.Port)
}

// APIURL returns the native Ollama API base URL, used for model pulls.
func (c OllamaConfig) APIURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// ClaudeConfig holds settings for the optional Claude summarizer backend.
// The API key is read from the ANTHROPIC_API_KEY environment variable, never
// from the settings file.
type ClaudeConfig struct {
	Model string `yaml:"model"`
}

// SpeechConfig holds the optional text-to-speech settings.
type SpeechConfig struct {
	Enabled        bool    `yaml:"enabled"`
	EndpointURL    string  `yaml:"endpoint_url"`
	Model          string  `yaml:"model"`
	Voice          string  `yaml:"voice"`
	ResponseFormat string  `yaml:"response_format"`
	Speed          float64 `yaml:"speed"`
}

// FeedTimeout returns the per-feed fetch timeout as a duration.
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.FeedTimeoutSeconds) * time.Second
}

// Load reads the settings file at path, applies defaults, expands the output
// folder, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}

	cfg.applyDefaults()

	expanded, err := expandHome(cfg.OutputFolder)
	if err != nil {
		return nil, fmt.Errorf("expand output folder: %w", err)
	}
	cfg.OutputFolder = expanded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.NumArticles == 0 {
		c.NumArticles = DefaultNumArticles
	}
	if c.FeedTimeoutSeconds == 0 {
		c.FeedTimeoutSeconds = DefaultFeedTimeoutSeconds
	}
	if c.SummarizerBackend == "" {
		c.SummarizerBackend = BackendOllama
	}
	if c.Ollama.Host == "" {
		c.Ollama.Host = DefaultOllamaHost
	}
	if c.Ollama.Port == 0 {
		c.Ollama.Port = DefaultOllamaPort
	}
	if c.TextToSpeech.ResponseFormat == "" {
		c.TextToSpeech.ResponseFormat = DefaultSpeechFormat
	}
	if c.TextToSpeech.Speed == 0 {
		c.TextToSpeech.Speed = DefaultSpeechSpeed
	}
}

// Validate checks the configuration and returns an error describing the first
// invalid field found.
func (c *Config) Validate() error {
	if c.FeedsFile == "" {
		return fmt.Errorf("feeds_file must be set")
	}
	if c.RemovedFeedsFile == "" {
		return fmt.Errorf("removed_feeds_file must be set")
	}
	if c.OutputFolder == "" {
		return fmt.Errorf("output_folder must be set")
	}
	if c.NumArticles <= 0 {
		return fmt.Errorf("num_articles must be positive, got %d", c.NumArticles)
	}
	if c.FeedTimeoutSeconds <= 0 {
		return fmt.Errorf("feed_timeout must be positive, got %d", c.FeedTimeoutSeconds)
	}

	switch c.SummarizerBackend {
	case BackendOllama:
		if c.Ollama.Model == "" {
			return fmt.Errorf("ollama.model must be set")
		}
		if c.Ollama.Port < 1 || c.Ollama.Port > 65535 {
			return fmt.Errorf("ollama.port out of range: %d", c.Ollama.Port)
		}
	case BackendClaude:
		if c.Claude.Model == "" {
			return fmt.Errorf("claude.model must be set")
		}
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY must be set for the claude backend")
		}
	case BackendNoOp:
		// no backend settings to check
	default:
		return fmt.Errorf("unknown summarizer_backend: %q (must be %q, %q, or %q)",
			c.SummarizerBackend, BackendOllama, BackendClaude, BackendNoOp)
	}

	if c.TextToSpeech.Enabled {
		if err := c.TextToSpeech.validate(); err != nil {
			return fmt.Errorf("text_to_speech: %w", err)
		}
	}

	return nil
}

func (s *SpeechConfig) validate() error {
	if s.EndpointURL == "" {
		return fmt.Errorf("endpoint_url must be set when enabled")
	}
	if s.Model == "" {
		return fmt.Errorf("model must be set when enabled")
	}
	if s.Voice == "" {
		return fmt.Errorf("voice must be set when enabled")
	}
	if s.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", s.Speed)
	}
	return nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
