package summarizer

import "context"

// NoOp passes truncated article content through as its own summary. It backs
// the "noop" backend selection: dry runs against real feeds without a model
// server.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns the content truncated to the first 500 bytes.
func (n *NoOp) Summarize(_ context.Context, content string) (string, error) {
	const maxLength = 500
	if len(content) <= maxLength {
		return content, nil
	}
	return content[:maxLength] + "...", nil
}
