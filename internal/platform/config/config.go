// Copyright (c) 2026 Tripgate. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (CMS client, proxies) via constructors.
  - Zero Hidden State: No component reads the process environment at call
    sites; everything is resolved here, once, at startup.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Tripgate gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Content source (headless CMS). CMSFallbackAPIURL is an optional second
	// origin (e.g. a tunnel in front of a staging CMS); both contribute their
	// hosts to the media proxy allow-list.
	CMSAPIURL         string `env:"CMS_API_URL,required"`
	CMSFallbackAPIURL string `env:"CMS_FALLBACK_API_URL"`

	// Optional basic auth for the CMS and uploads hosts. Credentials are
	// attached only when both values are present.
	CMSBasicAuthUser string `env:"CMS_BASIC_AUTH_USER"`
	CMSBasicAuthPass string `env:"CMS_BASIC_AUTH_PASS"`

	// MediaAllowedHostSuffix is the tunnel-domain suffix accepted by the
	// media proxy in addition to the configured CMS origin hosts.
	MediaAllowedHostSuffix string `env:"MEDIA_ALLOWED_HOST_SUFFIX" envDefault:".trycloudflare.com"`

	// Third-party business reviews
	ReviewSyncKey  string        `env:"REVIEW_SYNC_KEY"`
	PlacesAPIURL   string        `env:"PLACES_API_URL" envDefault:"https://maps.googleapis.com/maps/api/place"`
	PlacesAPIKey   string        `env:"PLACES_API_KEY"`
	PlacesPlaceID  string        `env:"PLACES_PLACE_ID"`
	ReviewCacheTTL time.Duration `env:"REVIEW_CACHE_TTL" envDefault:"24h"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// cmsOriginHosts is derived from the API URLs at load time and reused by
	// the media proxy allow-list on every request.
	cmsOriginHosts []string
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// Beyond the tag-driven parse it validates the enumerated Environment value
// and pre-resolves the CMS origin hosts, so a malformed CMS URL fails the
// process at startup rather than on the first proxied request.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	switch cfg.Environment {
	case "development", "staging", "production":
	default:
		return nil, fmt.Errorf("config: unknown ENVIRONMENT %q", cfg.Environment)
	}

	for _, raw := range []string{cfg.CMSAPIURL, cfg.CMSFallbackAPIURL} {
		if raw == "" {
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("config: CMS API URL %q is not an absolute URL", raw)
		}
		cfg.cmsOriginHosts = append(cfg.cmsOriginHosts, parsed.Hostname())
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// # Derived Views

// CMSOriginHosts returns the hostnames of the configured content-source
// origins, in declaration order.
func (c *Config) CMSOriginHosts() []string {
	return c.cmsOriginHosts
}

// HasCMSBasicAuth reports whether both basic-auth credentials are configured.
func (c *Config) HasCMSBasicAuth() bool {
	return c.CMSBasicAuthUser != "" && c.CMSBasicAuthPass != ""
}

// AllowedOrigins returns the extra CORS origins as a trimmed list.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if clean := strings.TrimSpace(origin); clean != "" {
			origins = append(origins, clean)
		}
	}
	return origins
}
