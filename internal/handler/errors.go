package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
)

// registryHint points callers at the public registry when a valid-looking
// feed ID turns up no datasets.
const registryHint = "Verify the feed ID exists at https://mobilitydatabase.org"

// errorResponse is the JSON body for every failed request. hint and message
// are populated only where they help: hint on 404s, message on 500s.
type errorResponse struct {
	Error   string `json:"error"`
	FeedID  string `json:"feed_id"`
	Hint    string `json:"hint,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeError maps a service error to its status code and JSON body.
// rawFeedID is echoed back so clients can see which input failed; failMessage
// names the operation that failed (generate vs download) on 500s.
//
// The 500 detail is err.Error(). Registry errors name the env var to check
// but never contain the credential value, so the detail is safe to return.
func writeError(w http.ResponseWriter, rawFeedID string, err error, failMessage string) {
	switch {
	case errors.Is(err, domain.ErrInvalidFeedID):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  invalidFeedIDMessage(rawFeedID),
			FeedID: rawFeedID,
		})
	case errors.Is(err, domain.ErrNoDatasets):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:  "No datasets found for this feed ID",
			FeedID: rawFeedID,
			Hint:   registryHint,
		})
	default:
		// ErrUnauthorized and ErrUpstream both land here. An auth failure is
		// an operator problem (bad or missing refresh token), not something
		// the HTTP caller can fix, so it reports as a server error.
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   err.Error(),
			FeedID:  rawFeedID,
			Message: failMessage,
		})
	}
}

// invalidFeedIDMessage builds the client-facing 400 message. The handler owns
// the wording because it knows whether the ID was empty or just malformed.
func invalidFeedIDMessage(rawFeedID string) string {
	if rawFeedID == "" {
		return "Feed ID is required"
	}
	return fmt.Sprintf("Invalid feed ID format: %s. Expected format: mdb-123", rawFeedID)
}
