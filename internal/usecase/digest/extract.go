package digest

import (
	"strings"

	"feed-digest/internal/domain/entity"
)

// ExtractArticles normalizes a fetched feed into at most maxArticles validated
// articles, in feed order. Entry content is selected by a strict fallback
// chain (summary, description, content block, title); entries whose selected
// content is empty or all-whitespace are dropped entirely. An empty result
// signals "no usable content" and triggers quarantine in the caller.
func ExtractArticles(feed *RawFeed, maxArticles int) []entity.Article {
	entries := feed.Entries
	if maxArticles > 0 && len(entries) > maxArticles {
		entries = entries[:maxArticles]
	}

	articles := make([]entity.Article, 0, len(entries))
	for _, e := range entries {
		art, ok := entity.NewArticle(e.Title, e.Link, selectContent(e))
		if !ok {
			continue
		}
		articles = append(articles, art)
	}

	return articles
}

// selectContent applies the field fallback chain: first non-empty wins.
func selectContent(e RawEntry) string {
	for _, candidate := range []string{e.Summary, e.Description, e.Content, e.Title} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}
