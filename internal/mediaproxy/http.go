// Copyright (c) 2026 Tripgate. All rights reserved.

package mediaproxy

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
	"github.com/nguyenvo/tripgate/internal/platform/respond"
)

// Handler implements the HTTP layer for the media proxy.
type Handler struct {
	options Options
	client  *http.Client
	logger  *slog.Logger
}

// NewHandler constructs a media proxy [Handler] with its own upstream client.
//
// The client never follows redirects: only the validated target is ever
// fetched, and an upstream 3xx is relayed as a non-2xx diagnostic like any
// other upstream error.
func NewHandler(options Options, logger *slog.Logger) *Handler {
	return &Handler{
		options: options,
		client: &http.Client{
			Timeout: constants.MediaFetchTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// Routes returns a [chi.Router] exposing the proxy endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.proxy)
	return router
}

// upstreamDiagnostic is the body returned for upstream fetch failures.
//
// It deliberately names the host, path, and whether credentials were sent:
// operators must be able to tell an auth failure from a network failure from
// a missing file without reproducing the fetch by hand.
type upstreamDiagnostic struct {
	Error         string `json:"error"`
	Host          string `json:"host"`
	Path          string `json:"path"`
	AuthAttempted bool   `json:"auth_attempted"`
}

/*
GET /api/media?url=<absolute-url>.

Description: Validates the target against the allow-list and streams the
upstream media body back verbatim.

Response:
  - 200: Upstream body with its content type (application/octet-stream fallback)
  - 400: ErrValidation: Missing, malformed, or disallowed target URL
  - 502: Upstream unreachable
  - upstream status: Upstream responded non-2xx; status is relayed with a diagnostic body
*/
func (handler *Handler) proxy(writer http.ResponseWriter, request *http.Request) {

	// 1. Admission: nothing is fetched for an unvalidated target.
	target, err := handler.options.validateTarget(request.URL.Query().Get("url"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Upstream fetch with explicit identity and optional credentials.
	ctx, cancel := context.WithTimeout(request.Context(), constants.MediaFetchTimeout)
	defer cancel()

	upstreamRequest, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if reqErr != nil {
		respond.Error(writer, request, reqErr)
		return
	}
	upstreamRequest.Header.Set("User-Agent", constants.MediaProxyUserAgent)
	if handler.options.hasBasicAuth() {
		upstreamRequest.SetBasicAuth(handler.options.BasicAuthUser, handler.options.BasicAuthPass)
	}

	upstream, fetchErr := handler.client.Do(upstreamRequest)
	if fetchErr != nil {
		handler.logger.WarnContext(request.Context(), "media_upstream_unreachable",
			slog.String("host", target.Hostname()),
			slog.Any("error", fetchErr),
		)
		respond.JSON(writer, http.StatusBadGateway, upstreamDiagnostic{
			Error:         "upstream unreachable",
			Host:          target.Hostname(),
			Path:          target.Path,
			AuthAttempted: handler.options.hasBasicAuth(),
		})
		return
	}
	defer upstream.Body.Close()

	// 3. Non-2xx: relay the upstream status instead of masking it as a 500.
	if upstream.StatusCode < 200 || upstream.StatusCode > 299 {
		respond.JSON(writer, upstream.StatusCode, upstreamDiagnostic{
			Error:         "upstream fetch failed",
			Host:          target.Hostname(),
			Path:          target.Path,
			AuthAttempted: handler.options.hasBasicAuth(),
		})
		return
	}

	// 4. Stream the body back verbatim.
	contentType := upstream.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	writer.Header().Set("Content-Type", contentType)

	cacheControl := upstream.Header.Get("Cache-Control")
	if cacheControl == "" {
		cacheControl = constants.MediaDefaultCacheControl
	}
	writer.Header().Set("Cache-Control", cacheControl)

	if length := upstream.Header.Get("Content-Length"); length != "" {
		writer.Header().Set("Content-Length", length)
	}

	writer.WriteHeader(http.StatusOK)
	if _, copyErr := io.Copy(writer, upstream.Body); copyErr != nil {
		// Headers are already on the wire; all we can do is record it.
		handler.logger.WarnContext(request.Context(), "media_stream_interrupted",
			slog.String("host", target.Hostname()),
			slog.Any("error", copyErr),
		)
	}
}
