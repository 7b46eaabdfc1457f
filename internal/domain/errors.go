package domain

import "errors"

// ErrInvalidFeedID is returned by ParseFeedID when a raw identifier does not
// match the registry's <prefix>-<digits> format. No network call has been
// attempted when this error is returned.
// Handlers should map this to HTTP 400.
var ErrInvalidFeedID = errors.New("invalid feed ID")

// ErrUnauthorized is returned by the registry client when no refresh token is
// configured, when the token exchange fails, or when the registry rejects the
// access token. Credential configuration is an operator responsibility, so
// handlers map this to HTTP 500, not a 4xx client error.
var ErrUnauthorized = errors.New("registry authorization failed")

// ErrNoDatasets is returned by the registry client when a structurally valid
// feed identifier has no datasets upstream. An empty listing is never a
// success: callers rely on the distinction to answer HTTP 404.
var ErrNoDatasets = errors.New("no datasets found")

// ErrUpstream covers every other registry failure: transport errors,
// timeouts, non-2xx responses, oversized or malformed payloads.
// Handlers should map this to HTTP 500.
var ErrUpstream = errors.New("registry request failed")
