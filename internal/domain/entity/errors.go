package entity

import "errors"

// Sentinel errors for domain layer operations.
var (
	// ErrNoFeeds indicates the active feed list is missing or empty.
	// The run has nothing to process and must abort before any output.
	ErrNoFeeds = errors.New("no feeds configured")

	// ErrModelUnavailable indicates the summarization model could not be
	// made available (probe failed and pull did not recover it).
	ErrModelUnavailable = errors.New("summarization model unavailable")

	// ErrEmptySummary indicates the backend returned a response with no
	// usable text after cleanup.
	ErrEmptySummary = errors.New("empty summary")
)
