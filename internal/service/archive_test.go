package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
	"github.com/ankoure/gtfs-archive-txt/internal/service"
)

// mockLister is a hand-written test double for service.DatasetLister.
// A single function field is all the mocking this interface needs; no mock
// generation library required.
type mockLister struct {
	list func(ctx context.Context, feedID domain.FeedID) ([]domain.DatasetRecord, error)
}

func (m *mockLister) ListDatasets(ctx context.Context, feedID domain.FeedID) ([]domain.DatasetRecord, error) {
	return m.list(ctx, feedID)
}

// compile-time check: mockLister must satisfy service.DatasetLister.
var _ service.DatasetLister = (*mockLister)(nil)

// ---- helpers ---------------------------------------------------------------

func listerReturning(records ...domain.DatasetRecord) *mockLister {
	return &mockLister{
		list: func(_ context.Context, _ domain.FeedID) ([]domain.DatasetRecord, error) {
			return records, nil
		},
	}
}

func sampleRecord(id string) domain.DatasetRecord {
	return domain.DatasetRecord{
		ID:           id,
		StartDate:    "2025-01-01",
		EndDate:      "2025-06-30",
		DownloadedAt: "2025-01-02T08:00:00Z",
		HostedURL:    "https://files.example.com/" + id + ".zip",
	}
}

// ---- Generate tests --------------------------------------------------------

func TestArchiveService_Generate_Valid(t *testing.T) {
	svc := service.NewArchiveService(listerReturning(sampleRecord("a"), sampleRecord("b")))

	doc, err := svc.Generate(context.Background(), "mdb-503", false)

	require.NoError(t, err)
	assert.Equal(t, domain.FeedID("mdb-503"), doc.FeedID)
	assert.Equal(t, 2, doc.Rows)

	lines := strings.Split(strings.TrimRight(doc.Content, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "feed_start_date,feed_end_date,feed_version,archive_url,archive_note", lines[0])
}

func TestArchiveService_Generate_PassesParsedFeedID(t *testing.T) {
	var got domain.FeedID
	lister := &mockLister{
		list: func(_ context.Context, feedID domain.FeedID) ([]domain.DatasetRecord, error) {
			got = feedID
			return []domain.DatasetRecord{sampleRecord("a")}, nil
		},
	}
	svc := service.NewArchiveService(lister)

	_, err := svc.Generate(context.Background(), "tld-2085", false)

	require.NoError(t, err)
	assert.Equal(t, domain.FeedID("tld-2085"), got)
}

func TestArchiveService_Generate_InvalidFeedID(t *testing.T) {
	called := false
	lister := &mockLister{
		list: func(_ context.Context, _ domain.FeedID) ([]domain.DatasetRecord, error) {
			called = true
			return nil, nil
		},
	}
	svc := service.NewArchiveService(lister)

	_, err := svc.Generate(context.Background(), "bad-id", false)

	assert.ErrorIs(t, err, domain.ErrInvalidFeedID)
	// Validation failures never reach the registry.
	assert.False(t, called)
}

func TestArchiveService_Generate_NoDatasets(t *testing.T) {
	lister := &mockLister{
		list: func(_ context.Context, feedID domain.FeedID) ([]domain.DatasetRecord, error) {
			return nil, fmt.Errorf("%w for feed %s", domain.ErrNoDatasets, feedID)
		},
	}
	svc := service.NewArchiveService(lister)

	_, err := svc.Generate(context.Background(), "mdb-999", false)

	assert.ErrorIs(t, err, domain.ErrNoDatasets)
}

func TestArchiveService_Generate_RegistryErrorPassthrough(t *testing.T) {
	bang := errors.New("connection reset")
	lister := &mockLister{
		list: func(_ context.Context, _ domain.FeedID) ([]domain.DatasetRecord, error) {
			return nil, bang
		},
	}
	svc := service.NewArchiveService(lister)

	_, err := svc.Generate(context.Background(), "mdb-503", false)

	// The service adds context but keeps the cause in the chain.
	assert.ErrorIs(t, err, bang)
}

func TestArchiveService_Generate_FilterNullDates(t *testing.T) {
	undated := sampleRecord("undated")
	undated.StartDate = ""
	undated.EndDate = ""
	svc := service.NewArchiveService(listerReturning(sampleRecord("dated"), undated))

	doc, err := svc.Generate(context.Background(), "mdb-503", true)

	require.NoError(t, err)
	assert.Equal(t, 1, doc.Rows)
	assert.NotContains(t, doc.Content, "undated")
}

func TestArchiveService_Generate_KeepsRegistryOrder(t *testing.T) {
	svc := service.NewArchiveService(listerReturning(sampleRecord("first"), sampleRecord("second")))

	doc, err := svc.Generate(context.Background(), "mdb-503", false)

	require.NoError(t, err)
	assert.Less(t, strings.Index(doc.Content, "first"), strings.Index(doc.Content, "second"))
}
