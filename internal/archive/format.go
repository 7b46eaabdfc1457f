// Package archive renders Mobility Database dataset records in the MBTA
// archived_feeds.txt format: a fixed five-column CSV listing each historical
// feed snapshot with its service date range, version timestamp, and archive
// location. Rendering does no I/O and consults no clock, so identical input
// always produces identical output.
package archive

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
)

// csvHeader defines the column names written as the first line of every
// document. The order is fixed by the archived_feeds.txt convention.
var csvHeader = []string{
	"feed_start_date", "feed_end_date", "feed_version", "archive_url", "archive_note",
}

// Options controls optional row filtering during rendering.
type Options struct {
	// FilterNullDates drops rows whose start or end date is missing or
	// unparseable instead of emitting them with empty date columns.
	// Consumers that join archived_feeds.txt against service calendars
	// ask for this to avoid rows they cannot place in time.
	FilterNullDates bool
}

// Render builds the archived_feeds.txt document for feedID from records.
// Rows appear in input order; Render never re-sorts. Callers that need a
// particular order (the registry client returns newest-first) establish it
// before rendering. Rendering the same input twice yields byte-identical
// output, and an empty input yields a header-only document.
func Render(feedID domain.FeedID, records []domain.DatasetRecord, opts Options) domain.ArchiveDocument {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // csv.Writer over a bytes.Buffer cannot fail
	w.Write(csvHeader)

	rows := 0
	for _, rec := range records {
		row := Row(rec)
		if opts.FilterNullDates && (row.FeedStartDate == "" || row.FeedEndDate == "") {
			continue
		}
		//nolint:errcheck
		w.Write([]string{row.FeedStartDate, row.FeedEndDate, row.FeedVersion, row.ArchiveURL, row.ArchiveNote})
		rows++
	}
	w.Flush()

	return domain.ArchiveDocument{FeedID: feedID, Content: buf.String(), Rows: rows}
}

// Row maps one dataset record to its formatted output row. The service date
// range is compacted to YYYYMMDD; the version timestamp, archive URL, and
// note pass through verbatim.
func Row(rec domain.DatasetRecord) domain.ArchiveRow {
	return domain.ArchiveRow{
		FeedStartDate: compactDate(rec.StartDate),
		FeedEndDate:   compactDate(rec.EndDate),
		FeedVersion:   rec.DownloadedAt,
		ArchiveURL:    rec.HostedURL,
		ArchiveNote:   rec.Note,
	}
}

// compactDate converts an ISO calendar date ("2025-11-07") or timestamp
// ("2025-11-07T17:17:24Z") to compact YYYYMMDD form. Registry datasets often
// carry no service range at all, so empty or unparseable input maps to ""
// rather than an error; FilterNullDates exists for consumers that want those
// rows gone entirely.
func compactDate(s string) string {
	if s == "" {
		return ""
	}
	layout := "2006-01-02"
	if strings.Contains(s, "T") {
		// RFC 3339 parsing accepts both "Z" and numeric offsets, with or
		// without fractional seconds.
		layout = time.RFC3339
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return ""
	}
	return t.Format("20060102")
}
