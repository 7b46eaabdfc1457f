// Package handler implements the HTTP handlers for the archived-feeds API.
// All handlers are methods on Server. Methods are split into files by concern
// (archive.go, health.go) but share the same Server struct so they can access
// its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
	"github.com/ankoure/gtfs-archive-txt/spec"
)

// ArchiveServicer defines the business operation the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the registry client.
type ArchiveServicer interface {
	Generate(ctx context.Context, rawFeedID string, filterNullDates bool) (domain.ArchiveDocument, error)
}

// Server holds the handlers for all API endpoints.
type Server struct {
	archive ArchiveServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(archive ArchiveServicer) *Server {
	return &Server{archive: archive}
}

// Routes returns the router for the full API surface. Cross-cutting
// middleware (request IDs, logging, CORS, recovery) is wired in main.go
// around this router, not here.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.Index)
	r.Get("/healthz", s.GetHealth)
	r.Get("/generate", s.GenerateArchive)
	r.Get("/download", s.DownloadArchive)

	// Legacy path. Some consumers build the download URL with a path join
	// that drops the query string, so the file name itself is routable.
	r.Get("/archived_feeds.txt", s.DownloadArchive)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	return r
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // nothing useful to do if the client went away mid-write
	json.NewEncoder(w).Encode(v)
}
