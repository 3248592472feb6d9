// Package registry provides the file-backed feed registry: newline-delimited
// URL lists for active and quarantined feeds.
package registry

import (
	"fmt"
	"os"
	"strings"

	"feed-digest/internal/domain/entity"
)

// FileRegistry loads and persists feed URL lists from plain text files.
// Each line is one URL; blank lines are ignored on read.
type FileRegistry struct {
	feedsPath   string
	removedPath string
}

// New creates a FileRegistry over the given active and quarantine list paths.
func New(feedsPath, removedPath string) *FileRegistry {
	return &FileRegistry{
		feedsPath:   feedsPath,
		removedPath: removedPath,
	}
}

// LoadActive reads the active feed list. A missing file or an empty list is
// fatal: the run has nothing to process.
func (r *FileRegistry) LoadActive() ([]string, error) {
	data, err := os.ReadFile(r.feedsPath)
	if err != nil {
		return nil, fmt.Errorf("read feeds file %s: %w", r.feedsPath, err)
	}

	feeds := parseLines(data)
	if len(feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s: %w", r.feedsPath, entity.ErrNoFeeds)
	}
	return feeds, nil
}

// Persist overwrites both lists with the computed partition of the original
// active list. The two writes are independent; a crash between them leaves
// one list stale, which the next run tolerates.
func (r *FileRegistry) Persist(active, quarantined []string) error {
	if err := writeLines(r.feedsPath, active); err != nil {
		return fmt.Errorf("write feeds file %s: %w", r.feedsPath, err)
	}
	if err := writeLines(r.removedPath, quarantined); err != nil {
		return fmt.Errorf("write removed feeds file %s: %w", r.removedPath, err)
	}
	return nil
}

func parseLines(data []byte) []string {
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		urls = append(urls, trimmed)
	}
	return urls
}

func writeLines(path string, urls []string) error {
	var b strings.Builder
	for _, url := range urls {
		b.WriteString(url)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
