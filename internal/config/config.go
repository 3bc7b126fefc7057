// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"os"
)

// Config holds everything cmd/api needs to wire the service.
type Config struct {
	Addr string

	// PGDSN selects the durable key-value backend; empty falls back to the
	// in-memory store (development only).
	PGDSN string

	// Ledger and issue-tracker repository.
	GitHubOwner string
	GitHubRepo  string
	GitHubToken string

	// AdminToken is the admin surface's shared credential. May be unset;
	// the authenticator then rejects every admin request.
	AdminToken string

	// Comma-separated origin overrides per surface.
	DevOrigins   string
	AdminOrigins string

	SentryDSN string
}

// Load reads configuration from the environment. The GitHub repository
// settings are required: without them the core can neither publish issues
// nor validate location ids.
func Load() (Config, error) {
	cfg := Config{
		Addr:         getEnvOrDefault("SATSPOTS_ADDR", ":8080"),
		PGDSN:        os.Getenv("SATSPOTS_PG_DSN"),
		GitHubOwner:  os.Getenv("SATSPOTS_GITHUB_OWNER"),
		GitHubRepo:   os.Getenv("SATSPOTS_GITHUB_REPO"),
		GitHubToken:  os.Getenv("SATSPOTS_GITHUB_TOKEN"),
		AdminToken:   os.Getenv("SATSPOTS_ADMIN_TOKEN"),
		DevOrigins:   os.Getenv("SATSPOTS_DEV_ORIGINS"),
		AdminOrigins: os.Getenv("SATSPOTS_ADMIN_ORIGINS"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
	}
	if cfg.GitHubOwner == "" || cfg.GitHubRepo == "" || cfg.GitHubToken == "" {
		return Config{}, errors.New("SATSPOTS_GITHUB_OWNER, SATSPOTS_GITHUB_REPO and SATSPOTS_GITHUB_TOKEN must be set")
	}
	return cfg, nil
}

func getEnvOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
