package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
)

// TestParseFeedID_AcceptsRegistryPrefixes verifies that well-formed
// identifiers from both registry namespaces parse and round-trip unchanged.
func TestParseFeedID_AcceptsRegistryPrefixes(t *testing.T) {
	for _, raw := range []string{"mdb-503", "mdb-1", "mdb-0012", "tld-1", "tld-2085"} {
		id, err := domain.ParseFeedID(raw)

		require.NoError(t, err, "expected %q to be accepted", raw)
		assert.Equal(t, raw, id.String())
	}
}

// TestParseFeedID_RejectsMalformed verifies that everything outside
// <prefix>-<digits> is rejected with ErrInvalidFeedID.
func TestParseFeedID_RejectsMalformed(t *testing.T) {
	malformed := []string{
		"bad-id",
		"mdb503",
		"mdb-",
		"-503",
		"mdb-503-extra",
		"mdb-5o3",
		"MDB-503",
		" mdb-503",
		"mdb-503 ",
		"gtfs-503",
		"mdb--503",
	}

	for _, raw := range malformed {
		_, err := domain.ParseFeedID(raw)

		require.Error(t, err, "expected %q to be rejected", raw)
		assert.ErrorIs(t, err, domain.ErrInvalidFeedID)
		assert.ErrorContains(t, err, raw, "error should carry the offending input")
	}
}

// TestParseFeedID_RejectsEmpty verifies the empty string is rejected rather
// than silently defaulted; defaulting is the HTTP layer's decision.
func TestParseFeedID_RejectsEmpty(t *testing.T) {
	_, err := domain.ParseFeedID("")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidFeedID)
}

// TestArchiveDocument_Filename verifies the download filename embeds the feed ID.
func TestArchiveDocument_Filename(t *testing.T) {
	doc := domain.ArchiveDocument{FeedID: "mdb-503"}

	assert.Equal(t, "archived_feeds_mdb-503.txt", doc.Filename())
}
