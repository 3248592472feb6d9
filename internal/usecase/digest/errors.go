package digest

import "fmt"

// FetchErrorKind classifies a failed feed fetch. The pipeline branches on
// these kinds to decide log level; every kind is a soft failure that yields
// zero articles for the feed without aborting the run.
type FetchErrorKind int

const (
	// FetchTimeout indicates the fetch exceeded the configured timeout.
	FetchTimeout FetchErrorKind = iota

	// FetchTransport indicates a network or HTTP-level failure
	// (non-2xx status, DNS failure, connection refused).
	FetchTransport

	// FetchParse indicates the payload was retrieved but structurally
	// unparseable as a feed.
	FetchParse
)

// String returns the metric/log label for the kind.
func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchTransport:
		return "transport"
	case FetchParse:
		return "parse"
	default:
		return "unknown"
	}
}

// FetchError is a classified feed fetch failure.
type FetchError struct {
	Kind FetchErrorKind
	URL  string
	Err  error
}

// Error returns a formatted message including the failure kind and URL.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch feed %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}
