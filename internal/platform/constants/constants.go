// Copyright (c) 2026 Tripgate. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Content Source: Wire paths and count headers of the headless CMS.
  - Media Proxy: Uploads prefix, user agent, and cache policy defaults.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tripgate-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Media proxy streams count against this, so it is sized for large uploads-directory images.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Header Names

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	// HeaderSecPurpose / HeaderPurpose mark speculative prefetch navigations.
	// Prefetches are never locale-redirected (see the locale router).
	HeaderSecPurpose = "Sec-Purpose"
	HeaderPurpose    = "Purpose"

	// HeaderTotalCount is the collection count header reported by the CMS.
	HeaderTotalCount = "X-WP-Total"
)

// # Content Source (headless CMS)

const (
	// CMSContentPath is the REST base path for typed content collections.
	CMSContentPath = "/wp-json/wp/v2"

	// CMSFormFeedbackPathFormat is the form-feedback endpoint; the verb
	// placeholder is the numeric form identifier submitted by the client.
	CMSFormFeedbackPathFormat = "/wp-json/contact-form-7/v1/contact-forms/%s/feedback"

	// CMSRequestTimeout bounds every read against the content source.
	CMSRequestTimeout = 10 * time.Second
)

// # Media Proxy

const (
	// MediaUploadsPrefix is the only remote path prefix the proxy will fetch.
	// Uploaded media is content-addressed below this directory.
	MediaUploadsPrefix = "/wp-content/uploads/"

	// MediaProxyUserAgent identifies proxy traffic to the upstream.
	MediaProxyUserAgent = "tripgate-media-proxy/1.0"

	// MediaDefaultCacheControl applies when the upstream sends no Cache-Control.
	// Uploaded media never changes in place, so a long immutable cache is safe.
	MediaDefaultCacheControl = "public, max-age=31536000, immutable"

	// MediaFetchTimeout bounds a single upstream media fetch.
	MediaFetchTimeout = 20 * time.Second
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisKeyReviewCache    = "reviews:cache"
	RedisKeyReviewLastSync = "reviews:last_sync"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)
