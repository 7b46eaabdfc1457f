package domain

// DatasetRecord is one historical snapshot of a feed, as returned by the
// Mobility Database dataset-listing endpoint. The JSON tags match the
// upstream field names so registry responses decode straight into this
// struct, and a type mismatch anywhere in the payload surfaces as a decode
// error instead of an untyped value sliding silently into the output.
//
// Date and timestamp fields stay strings on purpose: StartDate and EndDate
// may be null or malformed upstream (the formatter turns those into empty
// columns, not errors), and DownloadedAt is passed through verbatim as the
// feed_version column, so it must never be reparsed and reformatted.
type DatasetRecord struct {
	// ID is the registry's dataset identifier, e.g. "mdb-503-202511140017".
	ID string `json:"id"`

	// StartDate is the earliest service date the snapshot covers,
	// as an ISO calendar date ("2025-11-07"). Empty when upstream has
	// no service range for the dataset.
	StartDate string `json:"service_date_range_start"`

	// EndDate is the last covered service date. May be empty, see StartDate.
	EndDate string `json:"service_date_range_end"`

	// DownloadedAt is the ISO-8601 timestamp at which the registry archived
	// the snapshot ("2025-11-14T17:17:24+00:00"). It doubles as the version
	// label in the archived_feeds.txt output.
	DownloadedAt string `json:"downloaded_at"`

	// HostedURL points at the archived GTFS ZIP on the registry's storage.
	HostedURL string `json:"hosted_url"`

	// Note is free-form registry commentary on the snapshot. Usually empty.
	Note string `json:"note"`
}
