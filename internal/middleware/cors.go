package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers based on
// allowedOrigins. The archive is consumed by browser-based tools on other
// origins, so the default deployment allows "*"; each entry must otherwise be
// a full origin (scheme + host, no trailing slash).
//
// The API is read-only, so only GET and the OPTIONS preflight are allowed.
// The header list covers what API-gateway style clients conventionally send.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Amz-Date", "Authorization", "X-Api-Key"},
		MaxAge:         600,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
