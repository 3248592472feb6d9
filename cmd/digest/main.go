package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"feed-digest/internal/config"
	"feed-digest/internal/infra/ollama"
	"feed-digest/internal/infra/registry"
	"feed-digest/internal/infra/report"
	"feed-digest/internal/infra/scraper"
	"feed-digest/internal/infra/summarizer"
	"feed-digest/internal/infra/tts"
	"feed-digest/internal/observability/logging"
	"feed-digest/internal/usecase/digest"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	configPath := flag.String("config", "settings.yml", "path to the settings file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("invalid configuration",
			slog.String("path", *configPath),
			slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := buildService(cfg)
	if err != nil {
		logger.Error("failed to assemble pipeline", slog.Any("error", err))
		os.Exit(1)
	}

	if _, err := service.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("run interrupted, exiting")
			return
		}
		logger.Error("digest run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// buildService wires the configured backends into a digest service.
func buildService(cfg *config.Config) (*digest.Service, error) {
	feedRegistry := registry.New(cfg.FeedsFile, cfg.RemovedFeedsFile)
	fetcher := scraper.NewRSSFetcher(cfg.FeedTimeout())
	store := report.NewFileStore(cfg.OutputFolder)

	var (
		summ        digest.Summarizer
		provisioner digest.ModelProvisioner
	)
	switch cfg.SummarizerBackend {
	case config.BackendOllama:
		client := ollama.NewClient(cfg.Ollama)
		summ = summarizer.NewOllama(client)
		provisioner = ollama.NewProvisioner(client)
	case config.BackendClaude:
		summ = summarizer.NewClaude(os.Getenv("ANTHROPIC_API_KEY"), cfg.Claude.Model)
	case config.BackendNoOp:
		summ = summarizer.NewNoOp()
	default:
		return nil, fmt.Errorf("unknown summarizer backend: %q", cfg.SummarizerBackend)
	}

	var speech digest.SpeechRenderer
	if cfg.TextToSpeech.Enabled {
		speech = tts.NewClient(cfg.TextToSpeech)
	}

	return digest.NewService(
		feedRegistry,
		fetcher,
		summ,
		provisioner,
		store,
		speech,
		digest.Config{
			MaxArticles:  cfg.NumArticles,
			SpeechFormat: cfg.TextToSpeech.ResponseFormat,
		},
	), nil
}
