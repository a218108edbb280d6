// Copyright (c) 2026 Tripgate. All rights reserved.

package reviews

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nguyenvo/tripgate/internal/platform/apperr"
	"github.com/nguyenvo/tripgate/internal/platform/respond"
)

// Handler implements the HTTP layer for review reads and sync actions.
type Handler struct {
	reviewService *Service
	syncKey       string
}

// NewHandler constructs a review [Handler]. An empty syncKey disables the
// mutating sync actions entirely.
func NewHandler(service *Service, syncKey string) *Handler {
	return &Handler{reviewService: service, syncKey: syncKey}
}

// Routes returns a [chi.Router] with the review endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getCached)

	// Sync administration
	router.Get("/sync", handler.getStatus)
	router.Post("/sync", handler.runSync)
	router.Delete("/sync", handler.clearCache)

	return router
}

/*
GET /api/reviews.

Description: Returns the cached third-party review snapshot. This endpoint is
public and best-effort: any failure yields a JSON null body with 200, never
an error status.

Response:
  - 200: []BusinessReview, or null when nothing is cached
*/
func (handler *Handler) getCached(writer http.ResponseWriter, request *http.Request) {
	snapshot := handler.reviewService.Cached(request.Context())
	if len(snapshot) == 0 {
		respond.JSON(writer, http.StatusOK, nil)
		return
	}
	respond.JSON(writer, http.StatusOK, snapshot)
}

/*
GET /api/reviews/sync.

Description: Reports the sync state: last successful run and cached count.

Response:
  - 200: Status
*/
func (handler *Handler) getStatus(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.reviewService.Status(request.Context()))
}

/*
POST /api/reviews/sync?key=<sync-key>.

Description: Pulls fresh reviews from the places API, mirrors them into the
content source, and refreshes the cache.

Response:
  - 200: SyncReport
  - 401: ErrUnauthorized: Key mismatch or sync key not configured
  - 502: Places API pull failed
*/
func (handler *Handler) runSync(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authorize(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.reviewService.Sync(request.Context())
	if err != nil {
		respond.Error(writer, request, apperr.BadGateway("Review sync failed", err))
		return
	}

	respond.OK(writer, report)
}

/*
DELETE /api/reviews/sync?key=<sync-key>.

Description: Drops the cached review snapshot.

Response:
  - 204: Cache cleared
  - 401: ErrUnauthorized: Key mismatch or sync key not configured
*/
func (handler *Handler) clearCache(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authorize(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.Clear(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// authorize checks the shared-secret key in constant time. An unconfigured
// key rejects everything: sync must be opted into, never open by default.
func (handler *Handler) authorize(request *http.Request) error {
	provided := request.URL.Query().Get("key")

	if handler.syncKey == "" || provided == "" {
		return apperr.Unauthorized("Sync key required")
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(handler.syncKey)) != 1 {
		return apperr.Unauthorized("Invalid sync key")
	}

	return nil
}
