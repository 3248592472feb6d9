// Package entity defines the core domain entities and validation logic for the
// digest pipeline: validated articles, digest entries, and the per-run report.
package entity

import (
	"strings"
	"time"
)

// Default values applied when a feed entry lacks the corresponding field.
const (
	DefaultTitle = "Untitled"
	DefaultLink  = "No URL available"
)

// Article is a validated feed entry ready for summarization.
// Content is guaranteed non-empty by NewArticle; an Article with empty
// content is never constructed.
type Article struct {
	Title   string
	Link    string
	Content string
}

// NewArticle builds an Article from raw entry fields, applying defaults for
// missing title and link. It returns false when content is empty or
// whitespace-only; such entries are dropped by the extractor.
func NewArticle(title, link, content string) (Article, bool) {
	if strings.TrimSpace(content) == "" {
		return Article{}, false
	}

	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	if strings.TrimSpace(link) == "" {
		link = DefaultLink
	}

	return Article{
		Title:   title,
		Link:    link,
		Content: content,
	}, true
}

// DigestEntry is one rendered block of the daily digest: the article title,
// its summary, and the article link. Entries keep arrival order
// (feed order, then article order within the feed).
type DigestEntry struct {
	Heading string
	Body    string
	Link    string
}

// RunReport accumulates the outcome of a single pipeline run.
// It is created once per run and written to durable storage exactly once.
type RunReport struct {
	Date             time.Time
	Entries          []DigestEntry
	QuarantinedFeeds []string
	NarrationText    string
}

// AddEntry appends a digest entry, preserving arrival order.
func (r *RunReport) AddEntry(e DigestEntry) {
	r.Entries = append(r.Entries, e)
}

// Quarantine records a feed URL that produced no usable content this run.
func (r *RunReport) Quarantine(feedURL string) {
	r.QuarantinedFeeds = append(r.QuarantinedFeeds, feedURL)
}
