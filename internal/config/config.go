// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `validate:"required"`

	// RegistryURL is the base URL of the Mobility Database API.
	// Defaults to the public instance. Set MOBILITY_DB_API_URL to override
	// (e.g. to point at a staging registry).
	RegistryURL string `validate:"required,url"`

	// RefreshToken is the Mobility Database refresh token used for the
	// access-token exchange. Optional: without it the server still starts
	// and serves health checks, and archive requests fail with an
	// authorization error naming the variable to set.
	RefreshToken string

	// PageSize is the number of datasets requested per registry page.
	// Defaults to 100; the registry caps pages at 1000.
	PageSize int `validate:"gte=1,lte=1000"`

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string `validate:"oneof=debug info warn error"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"]: the archive is public data fetched by browser
	// tools on arbitrary origins. Set CORS_ORIGINS to a comma-separated
	// list to restrict it.
	CORSOrigins []string `validate:"min=1"`
}

// Load reads configuration from environment variables and returns a validated
// Config. A .env file in the working directory is applied first when present;
// real environment variables always win over .env entries.
func Load() (Config, error) {
	// A missing .env file is the normal production case, so the error is
	// deliberately ignored.
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		RegistryURL:  getEnv("MOBILITY_DB_API_URL", "https://api.mobilitydatabase.org/v1"),
		RefreshToken: os.Getenv("MOBILITY_DB_REFRESH_TOKEN"),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	pageSize, err := strconv.Atoi(getEnv("MOBILITY_DB_PAGE_SIZE", "100"))
	if err != nil {
		return Config{}, fmt.Errorf("MOBILITY_DB_PAGE_SIZE must be an integer: %w", err)
	}
	cfg.PageSize = pageSize

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
