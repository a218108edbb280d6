// Copyright (c) 2026 Tripgate. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/nguyenvo/tripgate/internal/i18n"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
	"github.com/nguyenvo/tripgate/internal/platform/ctxutil"
	"github.com/nguyenvo/tripgate/pkg/convert"
)

// # Locale Routing Gateway
//
// Every inbound page path is canonicalized to exactly one locale
// representation before any content fetching runs. The machine has three
// transitions, and exactly one fires per request:
//
//   - default-redundant ("/en", "/en/..."): redirect with the prefix
//     stripped, so the default locale is only ever visible at the bare path.
//     Prefetch requests are exempt and pass through unredirected instead —
//     redirecting a speculative fetch would double every backend read for a
//     navigation that will be redirected again anyway.
//   - already-canonical ("/zh", "/zh/..."): pass through unchanged with the
//     secondary locale resolved into the context.
//   - needs-canonicalization (bare path): internally resolve the default
//     locale without touching the client-visible URL.
//
// Build artifacts, API endpoints, and file requests bypass the machine
// entirely.

// LocaleRouter returns the locale canonicalization middleware.
func LocaleRouter() func(http.Handler) http.Handler {
	defaultPrefix := "/" + i18n.Default().String()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			path := request.URL.Path

			// Assets, API routes, and anything with a file extension are
			// never locale-routed.
			if bypassesLocaleRouting(path) {
				next.ServeHTTP(writer, request)
				return
			}

			// default-redundant: "/en" or "/en/..."
			if path == defaultPrefix || strings.HasPrefix(path, defaultPrefix+"/") {
				stripped := strings.TrimPrefix(path, defaultPrefix)
				if stripped == "" {
					stripped = "/"
				}

				if isPrefetch(request) {
					// Serve the canonical content without a redirect; the
					// client URL is corrected on the real navigation.
					request.URL.Path = stripped
					ctx := ctxutil.WithLocale(request.Context(), i18n.Default())
					next.ServeHTTP(writer, request.WithContext(ctx))
					return
				}

				target := stripped
				if request.URL.RawQuery != "" {
					target += "?" + request.URL.RawQuery
				}
				http.Redirect(writer, request, target, http.StatusPermanentRedirect)
				return
			}

			// already-canonical: a non-default locale prefix
			for _, locale := range i18n.All() {
				if locale.IsDefault() {
					continue
				}
				prefix := locale.PathPrefix()
				if path == prefix || strings.HasPrefix(path, prefix+"/") {
					ctx := ctxutil.WithLocale(request.Context(), locale)
					next.ServeHTTP(writer, request.WithContext(ctx))
					return
				}
			}

			// needs-canonicalization: bare path, served as the default locale.
			// The rewrite is internal only — the client-visible URL never
			// grows a prefix.
			ctx := ctxutil.WithLocale(request.Context(), i18n.Default())
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bypassesLocaleRouting reports whether the path is exempt from the state machine.
func bypassesLocaleRouting(path string) bool {
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return true
	}
	if strings.HasPrefix(path, "/assets/") || strings.HasPrefix(path, "/static/") {
		return true
	}
	if path == "/health" || path == "/ready" {
		return true
	}

	// A dot in the final segment marks a file request (favicon.ico,
	// robots.txt, hashed bundles).
	lastSegment := path[strings.LastIndex(path, "/")+1:]
	return strings.Contains(lastSegment, ".")
}

// isPrefetch reports whether the request is a speculative framework prefetch,
// identified by a purpose header or an explicit query flag.
func isPrefetch(request *http.Request) bool {
	for _, header := range []string{constants.HeaderSecPurpose, constants.HeaderPurpose} {
		if strings.Contains(strings.ToLower(request.Header.Get(header)), "prefetch") {
			return true
		}
	}
	return convert.ToBool(request.URL.Query().Get("prefetch"))
}
