package digest

// RawEntry is one item from a fetched feed, prior to validation. The fields
// mirror the parser's view of the payload; selection between them happens in
// the extraction step.
type RawEntry struct {
	Title string
	Link  string

	// Summary is the RSS description / Atom summary field.
	Summary string

	// Description is the Dublin Core description extension, when present.
	Description string

	// Content is the content:encoded / Atom content block.
	Content string
}

// RawFeed is the transient parse result of one fetch. It is never persisted.
type RawFeed struct {
	Entries []RawEntry
}
