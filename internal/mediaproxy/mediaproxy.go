// Copyright (c) 2026 Tripgate. All rights reserved.

/*
Package mediaproxy streams remote media assets through the gateway.

The renderer references images by their upstream URL; this proxy fetches them
server-side so the browser only ever talks to the gateway origin, and so
basic-auth-protected uploads stay reachable without exposing credentials.

# Security

The proxy fetches nothing the validation pipeline has not cleared. A target
must be an absolute HTTP(S) URL, must point below the uploads directory, and
must resolve to an allow-listed host (a configured content-source origin or
the tunnel-domain suffix). Everything else is rejected before any network
traffic happens, which is what keeps this endpoint from becoming an open
relay for server-side request forgery.
*/
package mediaproxy

import (
	"net/url"
	"strings"

	"github.com/nguyenvo/tripgate/internal/platform/apperr"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
)

// Options holds the allow-list and upstream credentials for the proxy.
type Options struct {
	// OriginHosts are the hostnames of the configured content-source origins.
	OriginHosts []string

	// AllowedHostSuffix additionally admits hosts under a tunnel domain
	// (e.g. ".trycloudflare.com").
	AllowedHostSuffix string

	// BasicAuthUser / BasicAuthPass are attached to upstream fetches only
	// when both are present.
	BasicAuthUser string
	BasicAuthPass string
}

// hasBasicAuth reports whether both upstream credentials are configured.
func (o Options) hasBasicAuth() bool {
	return o.BasicAuthUser != "" && o.BasicAuthPass != ""
}

// # Target Validation

// validateTarget runs the three-stage admission pipeline over a raw target
// URL. The stages are ordered cheapest-first and every rejection is a 400
// with a reason the operator can act on.
func (o Options) validateTarget(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, apperr.ValidationError("Missing url parameter")
	}

	// 1. Must parse as an absolute HTTP(S) URL.
	target, err := url.Parse(raw)
	if err != nil || target.Host == "" {
		return nil, apperr.ValidationError("url must be an absolute URL")
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, apperr.ValidationError("url must use http or https")
	}

	// 2. Must point below the uploads directory, regardless of host.
	if !strings.HasPrefix(target.Path, constants.MediaUploadsPrefix) {
		return nil, apperr.ValidationError("url path is outside the media directory")
	}

	// 3. Host must be allow-listed.
	if !o.allowsHost(target.Hostname()) {
		return nil, apperr.ValidationError("url host is not allowed")
	}

	return target, nil
}

// allowsHost reports whether hostname is a configured content-source origin
// or carries the tunnel-domain suffix.
func (o Options) allowsHost(hostname string) bool {
	for _, origin := range o.OriginHosts {
		if strings.EqualFold(hostname, origin) {
			return true
		}
	}

	return o.AllowedHostSuffix != "" && strings.HasSuffix(strings.ToLower(hostname), strings.ToLower(o.AllowedHostSuffix))
}
