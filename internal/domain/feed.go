// Package domain contains the core data types for the archived-feeds API.
// This package has zero external dependencies and is imported by every other
// internal package (archive, registry, service, handler).
package domain

import (
	"fmt"
	"regexp"
)

// DefaultFeedID is used when a request does not name a feed.
// mdb-503 is the MBTA's GTFS schedule feed in the Mobility Database.
const DefaultFeedID FeedID = "mdb-503"

// feedIDPattern matches a registry feed identifier: a known source prefix,
// a dash, and a numeric suffix, e.g. "mdb-503" or "tld-1234".
// mdb is the Mobility Database's own namespace; tld covers feeds imported
// from TransitLand.
var feedIDPattern = regexp.MustCompile(`^(mdb|tld)-[0-9]+$`)

// FeedID identifies a feed in the Mobility Database registry.
// Values are valid by construction: obtain one through ParseFeedID.
// The zero value is not a valid identifier.
type FeedID string

// ParseFeedID validates a raw feed identifier string and returns it as a
// FeedID. Anything that is not <prefix>-<digits> with a known prefix is
// rejected with a wrapped ErrInvalidFeedID carrying the offending input.
// Validation is local: no I/O happens here.
func ParseFeedID(raw string) (FeedID, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty feed ID", ErrInvalidFeedID)
	}
	if !feedIDPattern.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFeedID, raw)
	}
	return FeedID(raw), nil
}

func (id FeedID) String() string { return string(id) }
