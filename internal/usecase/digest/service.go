// Package digest implements the content-to-digest pipeline: it walks the
// active feed list, extracts and summarizes articles, assembles the daily
// digest, rewrites the feed registry, and optionally renders an audio
// narration. Feeds and articles are processed strictly sequentially in source
// order.
package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"feed-digest/internal/domain/entity"
	"feed-digest/internal/observability/metrics"
)

// FeedRegistry loads the active feed list and persists the end-of-run
// partition into active and quarantined lists.
type FeedRegistry interface {
	LoadActive() ([]string, error)
	Persist(active, quarantined []string) error
}

// FeedFetcher retrieves and parses one feed. Failures are reported as
// *FetchError so the pipeline can branch on the classified kind.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*RawFeed, error)
}

// Summarizer turns one article body into a short summary via a single model
// call. No retries; a failed call fails the one article.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// ModelProvisioner verifies the summarization model is callable before any
// feed is processed, pulling it on demand when the backend reports it missing.
type ModelProvisioner interface {
	EnsureAvailable(ctx context.Context) error
}

// ReportStore writes digest artifacts to durable storage.
type ReportStore interface {
	WriteDigest(date time.Time, markdown string) (string, error)
	AudioPath(date time.Time, format string) string
	AppendAudioLink(digestPath, audioPath string) error
}

// SpeechRenderer converts narration text into an audio artifact at the given
// path. Failures here never invalidate the already-written digest.
type SpeechRenderer interface {
	Render(ctx context.Context, text, outPath string) error
}

// Config holds the run parameters the service needs beyond its collaborators.
type Config struct {
	// MaxArticles caps how many entries are taken per feed.
	MaxArticles int

	// SpeechFormat is the audio container extension ("mp3", "wav", ...).
	SpeechFormat string
}

// Service orchestrates one digest run.
type Service struct {
	registry    FeedRegistry
	fetcher     FeedFetcher
	summarizer  Summarizer
	provisioner ModelProvisioner
	store       ReportStore
	speech      SpeechRenderer
	config      Config

	// now is swapped in tests to pin the digest date.
	now func() time.Time
}

// NewService creates a digest Service. provisioner and speech may be nil:
// a nil provisioner skips the model-availability check (backends without a
// pull capability) and a nil speech renderer disables narration entirely.
func NewService(
	registry FeedRegistry,
	fetcher FeedFetcher,
	summarizer Summarizer,
	provisioner ModelProvisioner,
	store ReportStore,
	speech SpeechRenderer,
	config Config,
) *Service {
	return &Service{
		registry:    registry,
		fetcher:     fetcher,
		summarizer:  summarizer,
		provisioner: provisioner,
		store:       store,
		speech:      speech,
		config:      config,
		now:         time.Now,
	}
}

// RunStats contains statistics about a completed run.
type RunStats struct {
	Feeds         int
	FetchFailures int
	Articles      int
	Summarized    int
	SummaryErrors int
	Quarantined   int
	DigestPath    string
	AudioWritten  bool
	Duration      time.Duration
}

// Run executes the whole pipeline once. It returns an error only for fatal
// conditions: model provisioning failure, a missing or empty feed list,
// failure to write the digest or registry files, or cancellation. Per-feed
// and per-article failures are absorbed and logged at their loop level.
func (s *Service) Run(ctx context.Context) (*RunStats, error) {
	logger := slog.Default()
	start := s.now()
	stats := &RunStats{}

	if s.provisioner != nil {
		if err := s.provisioner.EnsureAvailable(ctx); err != nil {
			return nil, fmt.Errorf("ensure model availability: %w", err)
		}
	}

	feeds, err := s.registry.LoadActive()
	if err != nil {
		return nil, fmt.Errorf("load active feeds: %w", err)
	}
	stats.Feeds = len(feeds)

	report := &entity.RunReport{Date: start}
	for _, feedURL := range feeds {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		s.processFeed(ctx, feedURL, report, stats)
	}

	markdown := RenderMarkdown(report)
	if s.speech != nil {
		report.NarrationText = RenderNarration(report)
	}

	digestPath, err := s.store.WriteDigest(report.Date, markdown)
	if err != nil {
		return stats, fmt.Errorf("write digest: %w", err)
	}
	stats.DigestPath = digestPath
	logger.Info("digest written", slog.String("path", digestPath))

	active := remainingActive(feeds, report.QuarantinedFeeds)
	if err := s.registry.Persist(active, report.QuarantinedFeeds); err != nil {
		return stats, fmt.Errorf("persist feed lists: %w", err)
	}
	stats.Quarantined = len(report.QuarantinedFeeds)
	if stats.Quarantined > 0 {
		logger.Info("removed feeds due to lack of content",
			slog.Int("count", stats.Quarantined))
	}

	if s.speech != nil && report.NarrationText != "" {
		stats.AudioWritten = s.renderAudio(ctx, report, digestPath)
	}

	stats.Duration = time.Since(start)
	logger.Info("digest run completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int("articles", stats.Articles),
		slog.Int("summarized", stats.Summarized),
		slog.Int("summary_errors", stats.SummaryErrors),
		slog.Int("quarantined", stats.Quarantined),
		slog.Bool("audio_written", stats.AudioWritten),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

// processFeed runs fetch, extraction, and per-article summarization for one
// feed. Every failure class here is soft: the feed contributes zero entries
// and is quarantined, and the run continues with the next feed.
func (s *Service) processFeed(ctx context.Context, feedURL string, report *entity.RunReport, stats *RunStats) {
	logger := slog.Default()
	logger.Info("processing feed", slog.String("feed_url", feedURL))

	fetchStart := time.Now()
	feed, err := s.fetcher.Fetch(ctx, feedURL)
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		s.logFetchFailure(feedURL, err, fetchDuration)
		stats.FetchFailures++
		s.quarantine(report, feedURL)
		return
	}
	metrics.RecordFeedFetch("success", fetchDuration)

	articles := ExtractArticles(feed, s.config.MaxArticles)
	if len(articles) == 0 {
		logger.Warn("no valid content found for feed",
			slog.String("feed_url", feedURL),
			slog.Int("entries", len(feed.Entries)))
		s.quarantine(report, feedURL)
		return
	}
	stats.Articles += len(articles)

	for _, art := range articles {
		if ctx.Err() != nil {
			return
		}
		s.processArticle(ctx, art, report, stats)
	}
}

// logFetchFailure logs a classified fetch failure at the level its kind
// demands: timeouts at info, transport and parse failures at warning.
func (s *Service) logFetchFailure(feedURL string, err error, duration time.Duration) {
	logger := slog.Default()

	kind := FetchTransport
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		kind = fetchErr.Kind
	}
	metrics.RecordFeedFetch(kind.String(), duration)

	switch kind {
	case FetchTimeout:
		logger.Info("feed fetch timed out",
			slog.String("feed_url", feedURL),
			slog.Duration("duration", duration),
			slog.Any("error", err))
	case FetchParse:
		logger.Warn("feed payload unparseable",
			slog.String("feed_url", feedURL),
			slog.Any("error", err))
	default:
		logger.Warn("feed fetch failed",
			slog.String("feed_url", feedURL),
			slog.Any("error", err))
	}
}

// processArticle issues the single summarization attempt for one article and
// records the outcome. A failure skips only this article.
func (s *Service) processArticle(ctx context.Context, art entity.Article, report *entity.RunReport, stats *RunStats) {
	logger := slog.Default()

	summaryStart := time.Now()
	summary, err := s.summarizer.Summarize(ctx, art.Content)
	summaryDuration := time.Since(summaryStart)
	metrics.RecordSummarizationDuration(summaryDuration)

	if err != nil {
		metrics.RecordArticleSummarized(false)
		stats.SummaryErrors++
		logger.Warn("failed to summarize article",
			slog.String("title", art.Title),
			slog.Duration("duration", summaryDuration),
			slog.Any("error", err))
		return
	}

	metrics.RecordArticleSummarized(true)
	stats.Summarized++
	report.AddEntry(entity.DigestEntry{
		Heading: art.Title,
		Body:    summary,
		Link:    art.Link,
	})
}

func (s *Service) quarantine(report *entity.RunReport, feedURL string) {
	metrics.RecordFeedQuarantined()
	report.Quarantine(feedURL)
}

// renderAudio runs the optional narration step. Any failure is logged and
// absorbed; the digest file on disk stays valid either way.
func (s *Service) renderAudio(ctx context.Context, report *entity.RunReport, digestPath string) bool {
	logger := slog.Default()

	audioPath := s.store.AudioPath(report.Date, s.config.SpeechFormat)
	if err := s.speech.Render(ctx, report.NarrationText, audioPath); err != nil {
		metrics.RecordSpeechRender(false)
		logger.Warn("audio narration failed, digest remains valid",
			slog.String("audio_path", audioPath),
			slog.Any("error", err))
		return false
	}

	if err := s.store.AppendAudioLink(digestPath, audioPath); err != nil {
		metrics.RecordSpeechRender(false)
		logger.Warn("failed to append audio link to digest",
			slog.String("digest_path", digestPath),
			slog.Any("error", err))
		return false
	}

	metrics.RecordSpeechRender(true)
	logger.Info("audio narration written", slog.String("path", audioPath))
	return true
}

// remainingActive computes the active side of the partition: the original
// feed list minus quarantined feeds, order preserved. Every original feed
// lands in exactly one of the two output lists.
func remainingActive(feeds, quarantined []string) []string {
	removed := make(map[string]struct{}, len(quarantined))
	for _, url := range quarantined {
		removed[url] = struct{}{}
	}

	active := make([]string, 0, len(feeds))
	for _, url := range feeds {
		if _, ok := removed[url]; ok {
			continue
		}
		active = append(active, url)
	}
	return active
}
