// Package testutil provides shared helpers for tests.
//
// Its centerpiece is a fake Mobility Database server covering the two
// endpoints this service calls: the token exchange and the per-feed dataset
// listing. Tests against the fake need no credentials and no network, while
// still exercising real HTTP, auth headers, and limit/offset pagination.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
)

// DefaultRefreshToken is the credential the fake accepts out of the box.
// Long enough to pass the client's truncation guard.
const DefaultRefreshToken = "test-refresh-token-0123456789"

// RegistryServer is an in-process stand-in for the Mobility Database API.
// Configure it, point a registry client at URL(), and assert on the counters
// afterwards. The zero value is not usable; construct via NewRegistryServer.
type RegistryServer struct {
	*httptest.Server

	// RefreshToken is the only refresh token the token endpoint accepts.
	RefreshToken string

	// AccessToken is the bearer token the fake issues and then requires on
	// every dataset request.
	AccessToken string

	// ExpiresIn is the expires_in value (seconds) in token responses.
	// Set it to 1 to make issued tokens immediately stale on the client side.
	ExpiresIn int

	// Envelope switches dataset responses from a bare JSON array to the
	// {"results": [...]} object shape the registry also produces.
	Envelope bool

	mu           sync.Mutex
	datasets     map[string][]domain.DatasetRecord
	tokenCalls   int
	datasetCalls int
	requestIDs   []string
}

// NewRegistryServer starts a fake registry and shuts it down when the test
// (and all its subtests) finish. Use the returned server's URL as the
// registry client's BaseURL.
func NewRegistryServer(t *testing.T) *RegistryServer {
	t.Helper()

	rs := &RegistryServer{
		RefreshToken: DefaultRefreshToken,
		AccessToken:  "test-access-token",
		ExpiresIn:    3600,
		datasets:     map[string][]domain.DatasetRecord{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /tokens", rs.handleToken)
	mux.HandleFunc("GET /gtfs_feeds/{feed}/datasets", rs.handleDatasets)

	rs.Server = httptest.NewServer(mux)
	t.Cleanup(rs.Close)
	return rs
}

// SetDatasets installs the records the fake returns for a feed.
func (rs *RegistryServer) SetDatasets(feedID string, records ...domain.DatasetRecord) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.datasets[feedID] = records
}

// TokenCalls reports how many token exchanges the fake has served.
func (rs *RegistryServer) TokenCalls() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.tokenCalls
}

// DatasetCalls reports how many dataset page requests the fake has served.
func (rs *RegistryServer) DatasetCalls() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.datasetCalls
}

// RequestIDs returns the X-Request-Id header of every dataset page request,
// in arrival order.
func (rs *RegistryServer) RequestIDs() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]string, len(rs.requestIDs))
	copy(out, rs.requestIDs)
	return out
}

func (rs *RegistryServer) handleToken(w http.ResponseWriter, r *http.Request) {
	rs.mu.Lock()
	rs.tokenCalls++
	rs.mu.Unlock()

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken != rs.RefreshToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": rs.AccessToken,
		"expires_in":   rs.ExpiresIn,
	})
}

func (rs *RegistryServer) handleDatasets(w http.ResponseWriter, r *http.Request) {
	rs.mu.Lock()
	rs.datasetCalls++
	rs.requestIDs = append(rs.requestIDs, r.Header.Get("X-Request-Id"))
	records := rs.datasets[r.PathValue("feed")]
	rs.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+rs.AccessToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	page := paginate(records, r.URL.Query())

	w.Header().Set("Content-Type", "application/json")
	if rs.Envelope {
		_ = json.NewEncoder(w).Encode(map[string]any{"results": page})
		return
	}
	_ = json.NewEncoder(w).Encode(page)
}

// paginate applies the registry's limit/offset query parameters. A missing
// or unparseable limit means "everything from offset on", which is how the
// real endpoint behaves when the parameters are omitted.
func paginate(records []domain.DatasetRecord, q map[string][]string) []domain.DatasetRecord {
	offset := queryInt(q, "offset", 0)
	if offset > len(records) {
		offset = len(records)
	}
	page := records[offset:]

	if limit := queryInt(q, "limit", -1); limit >= 0 && limit < len(page) {
		page = page[:limit]
	}

	// Encode [] rather than null for an empty page.
	if page == nil {
		page = []domain.DatasetRecord{}
	}
	return page
}

func queryInt(q map[string][]string, key string, fallback int) int {
	vals := q[key]
	if len(vals) == 0 {
		return fallback
	}
	n, err := strconv.Atoi(vals[0])
	if err != nil {
		return fallback
	}
	return n
}
