// Package service contains the business logic for the archived-feeds API.
// Services validate inputs and orchestrate registry calls and CSV rendering.
// No HTTP handling lives here: handlers depend on this layer, never the
// other way around.
package service

import (
	"context"
	"fmt"

	"github.com/ankoure/gtfs-archive-txt/internal/archive"
	"github.com/ankoure/gtfs-archive-txt/internal/domain"
)

// DatasetLister defines the registry operation the archive service depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets service
// tests inject a mock instead of spinning up an HTTP fixture.
type DatasetLister interface {
	// ListDatasets returns every dataset the registry holds for the feed,
	// newest first. Returns domain.ErrNoDatasets when the feed has none.
	ListDatasets(ctx context.Context, feedID domain.FeedID) ([]domain.DatasetRecord, error)
}

// ArchiveService turns a raw feed identifier into a rendered
// archived_feeds.txt document.
type ArchiveService struct {
	registry DatasetLister
}

// NewArchiveService constructs an ArchiveService backed by the provided lister.
func NewArchiveService(registry DatasetLister) *ArchiveService {
	return &ArchiveService{registry: registry}
}

// Generate validates rawFeedID, fetches every dataset the registry holds for
// it, and renders the archived_feeds.txt content. When filterNullDates is set,
// datasets missing either service date are dropped from the output.
//
// Failures carry the domain sentinels so handlers can map them to status
// codes: domain.ErrInvalidFeedID, domain.ErrNoDatasets, domain.ErrUnauthorized,
// domain.ErrUpstream.
func (s *ArchiveService) Generate(ctx context.Context, rawFeedID string, filterNullDates bool) (domain.ArchiveDocument, error) {
	feedID, err := domain.ParseFeedID(rawFeedID)
	if err != nil {
		return domain.ArchiveDocument{}, err
	}

	records, err := s.registry.ListDatasets(ctx, feedID)
	if err != nil {
		return domain.ArchiveDocument{}, fmt.Errorf("list datasets for %s: %w", feedID, err)
	}

	return archive.Render(feedID, records, archive.Options{FilterNullDates: filterNullDates}), nil
}
