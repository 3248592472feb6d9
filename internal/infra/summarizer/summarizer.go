// Package summarizer provides AI-powered article summarization
// implementations over the Ollama and Claude backends. Every implementation
// makes exactly one model call per article; failure handling and skipping is
// the caller's job.
package summarizer

import (
	"fmt"
	"strings"
)

// promptTemplate asks for a bare 1-2 sentence summary with no surrounding
// text. Models that ignore the rules and echo blank formatting are handled by
// cleanSummary.
const promptTemplate = `## INSTRUCTION

Respond with 1-2 sentences that summarize the key message of this article:

## ARTICLE

%s

## RULES

- DO NOT INCLUDE ANYTHING OTHER THAN THE SUMMARY IN YOUR RESPONSE
- DO NOT ADD ANY TEXT BEFORE OR AFTER THE SUMMARY
- ONLY RESPOND WITH THE ARTICLE SUMMARY
`

// maxContentChars bounds the article text included in the prompt to stay
// well inside small-model context windows.
const maxContentChars = 10000

func buildPrompt(content string) string {
	if len(content) > maxContentChars {
		content = content[:maxContentChars] + "..."
	}
	return fmt.Sprintf(promptTemplate, content)
}

// cleanSummary discards blank lines from the raw model output and rejoins the
// rest. No semantic correction: this only guards against models that pad
// their response with empty formatting.
func cleanSummary(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}
