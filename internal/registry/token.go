package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ankoure/gtfs-archive-txt/internal/domain"
)

const (
	// tokenTimeout bounds the token exchange call. The endpoint answers in
	// well under a second when healthy; ten seconds is already generous.
	tokenTimeout = 10 * time.Second

	// expirySkew renews access tokens a minute before the registry says they
	// expire, so a token never goes stale mid-pagination.
	expirySkew = 60 * time.Second

	// defaultExpiresIn is assumed when the token response omits expires_in.
	defaultExpiresIn = 3600

	// minRefreshTokenLen guards against truncated credentials. Real registry
	// refresh tokens are far longer; anything shorter is a copy-paste
	// accident worth rejecting before any network call.
	minRefreshTokenLen = 10
)

// tokenSource exchanges the long-lived refresh token for short-lived access
// tokens via POST {base}/tokens and caches the result until shortly before
// expiry, so concurrent requests share one exchange instead of hammering the
// token endpoint.
type tokenSource struct {
	client       *http.Client
	tokenURL     string
	refreshToken string

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func newTokenSource(tokenURL, refreshToken string) *tokenSource {
	return &tokenSource{
		client:       &http.Client{Timeout: tokenTimeout},
		tokenURL:     tokenURL,
		refreshToken: refreshToken,
	}
}

// token returns a currently valid access token, performing the exchange when
// the cache is empty or stale. Every failure here maps to
// domain.ErrUnauthorized: a missing credential, a malformed one, and a
// rejected or broken exchange all mean the same thing to callers.
func (ts *tokenSource) token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.accessToken != "" && time.Now().Before(ts.expiresAt) {
		return ts.accessToken, nil
	}

	if ts.refreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token configured (set MOBILITY_DB_REFRESH_TOKEN)", domain.ErrUnauthorized)
	}
	if len(ts.refreshToken) < minRefreshTokenLen {
		return "", fmt.Errorf("%w: refresh token looks truncated", domain.ErrUnauthorized)
	}

	payload, err := json.Marshal(struct {
		RefreshToken string `json:"refresh_token"`
	}{ts.refreshToken})
	if err != nil {
		return "", fmt.Errorf("%w: encode token request: %v", domain.ErrUnauthorized, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build token request: %v", domain.ErrUnauthorized, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token exchange: %v", domain.ErrUnauthorized, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: token endpoint returned status %d", domain.ErrUnauthorized, resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", domain.ErrUnauthorized, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: token response carried no access token", domain.ErrUnauthorized)
	}
	if tok.ExpiresIn <= 0 {
		tok.ExpiresIn = defaultExpiresIn
	}

	ts.accessToken = tok.AccessToken
	ts.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - expirySkew)
	return ts.accessToken, nil
}
