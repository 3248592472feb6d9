// Package metrics provides centralized Prometheus metrics for the digest
// pipeline. The batch process registers run-scoped counters and histograms so
// a completed run can be scraped or dumped by an external collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed metrics track fetching and quarantine outcomes per run.
var (
	// FeedsFetchedTotal counts feed fetch attempts by outcome
	// ("success", "timeout", "transport", "parse").
	FeedsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_feeds_fetched_total",
			Help: "Total number of feed fetch attempts by outcome",
		},
		[]string{"outcome"},
	)

	// FeedsQuarantinedTotal counts feeds moved to the quarantine list.
	FeedsQuarantinedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "digest_feeds_quarantined_total",
			Help: "Total number of feeds quarantined for lack of usable content",
		},
	)

	// FeedFetchDuration measures feed fetch duration in seconds.
	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_feed_fetch_duration_seconds",
			Help:    "Feed fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Summarization metrics track per-article model calls.
var (
	// ArticlesSummarizedTotal counts summarization attempts by status
	// ("success", "failure").
	ArticlesSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_articles_summarized_total",
			Help: "Total number of article summarization attempts by status",
		},
		[]string{"status"},
	)

	// SummarizationDuration measures the duration of one model call in seconds.
	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_summarization_duration_seconds",
			Help:    "Article summarization duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
)

// Speech metrics track the optional narration rendering step.
var (
	// SpeechRenderTotal counts audio rendering attempts by status
	// ("success", "failure").
	SpeechRenderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_speech_render_total",
			Help: "Total number of narration audio rendering attempts by status",
		},
		[]string{"status"},
	)
)
