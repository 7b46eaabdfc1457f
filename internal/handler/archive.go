package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
)

// generateResponse is the JSON body of a successful /generate call.
// count is the number of data rows in content, excluding the header line.
type generateResponse struct {
	Content string `json:"content"`
	Count   int    `json:"count"`
	FeedID  string `json:"feed_id"`
}

// indexResponse is the landing document served at /.
type indexResponse struct {
	Message  string `json:"message"`
	Endpoint string `json:"endpoint"`
}

// Index handles GET /.
// A small self-describing document pointing at the main endpoint.
func (s *Server) Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Message:  "GTFS Archive Feed Generator",
		Endpoint: "/generate",
	})
}

// GenerateArchive handles GET /generate.
//
// Query parameters:
//   - feed_id (optional): Mobility Database feed ID (e.g. mdb-503).
//     Defaults to the MBTA feed when omitted.
//   - filter_null_dates (optional): "true" excludes rows missing either
//     service date.
func (s *Server) GenerateArchive(w http.ResponseWriter, r *http.Request) {
	rawFeedID, filterNullDates := archiveParams(r)

	doc, err := s.archive.Generate(r.Context(), rawFeedID, filterNullDates)
	if err != nil {
		writeError(w, rawFeedID, err, "Failed to generate archived feeds")
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Content: doc.Content,
		Count:   doc.Rows,
		FeedID:  doc.FeedID.String(),
	})
}

// DownloadArchive handles GET /download and the legacy /archived_feeds.txt
// alias. Same parameters as GenerateArchive; the difference is the response:
// the CSV itself as a file attachment instead of a JSON wrapper.
func (s *Server) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	rawFeedID, filterNullDates := archiveParams(r)

	doc, err := s.archive.Generate(r.Context(), rawFeedID, filterNullDates)
	if err != nil {
		writeError(w, rawFeedID, err, "Failed to download archived feeds")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename()))
	// The archive grows as the registry ingests new datasets, so clients
	// must not cache it.
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // nothing useful to do if the client went away mid-write
	io.WriteString(w, doc.Content)
}

// archiveParams extracts feed_id and filter_null_dates from the query string.
// An absent feed_id falls back to the default feed. A present-but-empty one
// is passed through as-is so validation rejects it with "Feed ID is required"
// instead of silently serving the default.
func archiveParams(r *http.Request) (rawFeedID string, filterNullDates bool) {
	q := r.URL.Query()

	rawFeedID = q.Get("feed_id")
	if rawFeedID == "" && !q.Has("feed_id") {
		rawFeedID = domain.DefaultFeedID.String()
	}

	filterNullDates = strings.EqualFold(q.Get("filter_null_dates"), "true")
	return rawFeedID, filterNullDates
}
