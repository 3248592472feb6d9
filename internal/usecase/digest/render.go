package digest

import (
	"fmt"
	"strings"

	"feed-digest/internal/domain/entity"
)

// RenderMarkdown produces the digest document: a dated header followed by one
// block per entry in arrival order.
func RenderMarkdown(report *entity.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# News for %s\n\n", report.Date.Format("Monday, January 02, 2006"))

	blocks := make([]string, 0, len(report.Entries))
	for _, e := range report.Entries {
		blocks = append(blocks, fmt.Sprintf("## %s\n\n%s\n\n%s\n\n", e.Heading, e.Body, e.Link))
	}
	b.WriteString(strings.Join(blocks, "\n"))

	return b.String()
}

// RenderNarration builds the plain-text narration script from the same
// entries: heading and body concatenated as "<heading>. <body>", one entry per
// line, with markdown heading markers and blank-line sequences stripped for
// speech-friendliness.
func RenderNarration(report *entity.RunReport) string {
	parts := make([]string, 0, len(report.Entries))
	for _, e := range report.Entries {
		parts = append(parts, stripForSpeech(fmt.Sprintf("%s. %s", e.Heading, e.Body)))
	}
	return strings.Join(parts, "\n")
}

// stripForSpeech removes markdown heading markers at line starts and flattens
// line breaks into spaces so a TTS engine reads the text without pauses on
// formatting artifacts.
func stripForSpeech(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		stripped := strings.TrimLeft(line, "#")
		if stripped != line {
			stripped = strings.TrimPrefix(stripped, " ")
		}
		lines[i] = stripped
	}
	return strings.Join(lines, " ")
}
