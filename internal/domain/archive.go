package domain

import "fmt"

// ArchiveRow is a single data line of an archived_feeds.txt document.
// One row is produced per DatasetRecord, in the order the records were
// handed to the formatter.
//
// FeedStartDate and FeedEndDate are compact YYYYMMDD strings, empty when
// the source date was missing or unparseable. FeedVersion, ArchiveURL, and
// ArchiveNote are carried over from the record untouched.
type ArchiveRow struct {
	FeedStartDate string
	FeedEndDate   string
	FeedVersion   string
	ArchiveURL    string
	ArchiveNote   string
}

// ArchiveDocument is a fully rendered archived_feeds.txt: the fixed header
// line plus zero or more data rows, comma-joined and newline-terminated.
// Documents are built per request and never stored.
type ArchiveDocument struct {
	// FeedID is the feed the document was generated for.
	FeedID FeedID

	// Content is the complete CSV text, header included.
	Content string

	// Rows is the number of data rows in Content (the header does not count).
	Rows int
}

// Filename returns the attachment name for a file download of the document,
// e.g. "archived_feeds_mdb-503.txt".
func (d ArchiveDocument) Filename() string {
	return fmt.Sprintf("archived_feeds_%s.txt", d.FeedID)
}
