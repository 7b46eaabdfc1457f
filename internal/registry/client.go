// Package registry implements the Mobility Database API client used to list
// a feed's historical datasets. It owns the exchange of the long-lived
// refresh token for short-lived access tokens, exhaustive pagination of the
// dataset listing, and the mapping of upstream failures onto the domain
// error taxonomy. No business logic lives here, only HTTP and type mapping.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
)

const (
	// DefaultBaseURL is the production Mobility Database API root.
	DefaultBaseURL = "https://api.mobilitydatabase.org/v1"

	// DefaultPageSize is how many datasets are requested per listing page
	// when the configuration does not override it.
	DefaultPageSize = 100

	// userAgent identifies this service to the registry.
	userAgent = "archived-feeds-api/1.0"

	// requestTimeout bounds each individual dataset page request.
	requestTimeout = 30 * time.Second

	// fetchBudget bounds one whole ListDatasets call: the token exchange
	// plus every page. It is what keeps pagination from spinning forever
	// against a server that ignores limit/offset, and it surfaces as
	// domain.ErrUpstream on expiry.
	fetchBudget = 45 * time.Second

	// maxResponseBytes caps a single page body. Anything larger is treated
	// as an upstream fault rather than buffered without bound.
	maxResponseBytes = 10 << 20
)

// Config carries the settings the client needs. Zero values fall back to the
// production defaults. RefreshToken may stay empty: the server still boots,
// and every listing attempt fails with domain.ErrUnauthorized instead.
// Credential problems are per-request failures, never crashes.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.mobilitydatabase.org/v1".
	BaseURL string

	// RefreshToken is the long-lived Mobility Database credential exchanged
	// for access tokens.
	RefreshToken string

	// PageSize overrides DefaultPageSize when positive.
	PageSize int
}

// Client lists feed datasets from the Mobility Database.
// Safe for concurrent use: the only mutable state is the access-token cache,
// which is mutex-guarded inside tokenSource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	tokens     *tokenSource
}

// New constructs a Client from cfg.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		pageSize:   pageSize,
		tokens:     newTokenSource(baseURL+"/tokens", cfg.RefreshToken),
	}
}

// ListDatasets returns every dataset the registry holds for feedID, paging
// forward until the listing is exhausted, newest snapshot first.
//
// Error mapping follows the domain taxonomy: credential problems at either
// auth step are domain.ErrUnauthorized, an empty listing is
// domain.ErrNoDatasets (never an empty success), and transport, decode, or
// status failures are domain.ErrUpstream. One attempt per page, no retries.
func (c *Client) ListDatasets(ctx context.Context, feedID domain.FeedID) ([]domain.DatasetRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchBudget)
	defer cancel()

	token, err := c.tokens.token(ctx)
	if err != nil {
		return nil, err
	}

	// One correlation ID spans every page of this fetch. The registry logs
	// it, which turns "which request was that?" support questions into a
	// single grep on their side.
	requestID := uuid.NewString()

	var records []domain.DatasetRecord
	for offset := 0; ; offset += c.pageSize {
		page, err := c.fetchPage(ctx, feedID, token, requestID, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(page) < c.pageSize {
			break
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w for feed %s", domain.ErrNoDatasets, feedID)
	}

	// Newest snapshot first, matching the archival file convention.
	// ISO-8601 timestamps in a single offset notation sort lexicographically,
	// so the raw strings compare correctly; the stable sort preserves the
	// upstream order among equal timestamps.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DownloadedAt > records[j].DownloadedAt
	})

	return records, nil
}

// fetchPage performs one GET of the dataset listing at the given offset.
func (c *Client) fetchPage(ctx context.Context, feedID domain.FeedID, token, requestID string, offset int) ([]domain.DatasetRecord, error) {
	u := fmt.Sprintf("%s/gtfs_feeds/%s/datasets?limit=%d&offset=%d",
		c.baseURL, url.PathEscape(feedID.String()), c.pageSize, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch datasets: %v", domain.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: registry rejected the access token (check MOBILITY_DB_REFRESH_TOKEN)", domain.ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d from dataset listing", domain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrUpstream, err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", domain.ErrUpstream, maxResponseBytes)
	}

	return decodeDatasets(body)
}

// decodeDatasets accepts the two shapes the listing endpoint is known to
// produce: a bare JSON array of datasets, or an object wrapping the array in
// a "results" field. Any other well-formed object decodes to zero records;
// malformed JSON is an upstream fault.
func decodeDatasets(body []byte) ([]domain.DatasetRecord, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []domain.DatasetRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: decode datasets: %v", domain.ErrUpstream, err)
		}
		return records, nil
	}

	var envelope struct {
		Results []domain.DatasetRecord `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode datasets: %v", domain.ErrUpstream, err)
	}
	return envelope.Results, nil
}
