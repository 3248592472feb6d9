package metrics

import "time"

// RecordFeedFetch records a feed fetch attempt and its duration.
// Outcome should be one of "success", "timeout", "transport", "parse".
func RecordFeedFetch(outcome string, duration time.Duration) {
	FeedsFetchedTotal.WithLabelValues(outcome).Inc()
	FeedFetchDuration.Observe(duration.Seconds())
}

// RecordFeedQuarantined records a feed moved to the quarantine list.
func RecordFeedQuarantined() {
	FeedsQuarantinedTotal.Inc()
}

// RecordArticleSummarized records the result of an article summarization.
// Status should be either "success" or "failure".
func RecordArticleSummarized(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ArticlesSummarizedTotal.WithLabelValues(status).Inc()
}

// RecordSummarizationDuration records the time taken by one model call.
func RecordSummarizationDuration(duration time.Duration) {
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordSpeechRender records the result of the narration audio step.
func RecordSpeechRender(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	SpeechRenderTotal.WithLabelValues(status).Inc()
}
