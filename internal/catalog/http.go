// Copyright (c) 2026 Tripgate. All rights reserved.

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nguyenvo/tripgate/internal/i18n"
	"github.com/nguyenvo/tripgate/internal/platform/apperr"
	"github.com/nguyenvo/tripgate/internal/platform/ctxutil"
	"github.com/nguyenvo/tripgate/internal/platform/respond"
	"github.com/nguyenvo/tripgate/pkg/pagination"
	"github.com/nguyenvo/tripgate/pkg/query"
)

// Handler implements the HTTP layer for catalogue browsing.
type Handler struct {
	catalogService *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{catalogService: service}
}

// Routes returns a [chi.Router] configured with the catalogue's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Tour Listings
	router.Get("/tours", handler.listTours)
	router.Get("/tours/{slug}", handler.getTour)

	// Duration Views
	router.Get("/durations", handler.listDurations)
	router.Get("/durations/{slug}/tours", handler.listToursByDuration)

	// Taxonomy Views
	router.Get("/taxonomies/{taxonomy}", handler.listTerms)
	router.Get("/taxonomies/{taxonomy}/{slug}/tours", handler.listToursByTerm)

	// Blog
	router.Get("/posts", handler.listPosts)

	return router
}

// # Tour Endpoints

/*
GET /api/v1/tours.

Description: Lists tours for the request's locale, newest first. Supports
optional taxonomy filters passed as comma-separated term IDs.

Request:
  - query: page, per_page, locale, activity, destination, tag

Response:
  - 200: []Tour with pagination metadata (empty list when the content source is down)
*/
func (handler *Handler) listTours(writer http.ResponseWriter, request *http.Request) {
	locale := requestLocale(request)
	params := pagination.FromRequest(request)

	tours, meta, err := handler.catalogService.ListTours(request.Context(), locale, params, termFilter(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tours, meta)
}

/*
GET /api/v1/tours/{slug}.

Description: Retrieves a single tour by its slug.

Response:
  - 200: Tour
  - 404: ErrNotFound: No tour carries the slug
  - 503: ErrContentUnavailable: Content source unreachable
*/
func (handler *Handler) getTour(writer http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")
	if slug == "" {
		respond.Error(writer, request, apperr.NotFound("Tour"))
		return
	}

	tour, err := handler.catalogService.GetTour(request.Context(), requestLocale(request), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tour)
}

// # Duration Endpoints

/*
GET /api/v1/durations.

Description: Lists the fixed duration categories in ascending trip-length order.

Response:
  - 200: []DurationBucket
*/
func (handler *Handler) listDurations(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.catalogService.Durations())
}

/*
GET /api/v1/durations/{slug}/tours.

Description: Lists the tours whose duration falls within the named category.

Response:
  - 200: []Tour with pagination metadata (empty list for a category with no tours)
  - 404: ErrNotFound: Unknown category slug
*/
func (handler *Handler) listToursByDuration(writer http.ResponseWriter, request *http.Request) {
	locale := requestLocale(request)
	params := pagination.FromRequest(request)

	_, tours, meta, err := handler.catalogService.ToursByDuration(request.Context(), locale, chi.URLParam(request, "slug"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tours, meta)
}

// # Taxonomy Endpoints

/*
GET /api/v1/taxonomies/{taxonomy}.

Description: Lists the taxonomy's terms with display names resolved for the
request's locale.

Response:
  - 200: []TaxonomyTerm (empty list when the content source is down)
  - 404: ErrNotFound: Unknown taxonomy name
*/
func (handler *Handler) listTerms(writer http.ResponseWriter, request *http.Request) {
	taxonomy, ok := i18n.ParseTaxonomy(chi.URLParam(request, "taxonomy"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Taxonomy"))
		return
	}

	terms, err := handler.catalogService.TermsByTaxonomy(request.Context(), requestLocale(request), taxonomy)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, terms)
}

/*
GET /api/v1/taxonomies/{taxonomy}/{slug}/tours.

Description: Lists the tours classified under one taxonomy term, combining
explicit assignments with keyword classification of untagged tours.

Response:
  - 200: []Tour with pagination metadata
  - 404: ErrNotFound: Unknown taxonomy or term slug
  - 503: ErrContentUnavailable: Content source unreachable
*/
func (handler *Handler) listToursByTerm(writer http.ResponseWriter, request *http.Request) {
	taxonomy, ok := i18n.ParseTaxonomy(chi.URLParam(request, "taxonomy"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Taxonomy"))
		return
	}

	locale := requestLocale(request)
	params := pagination.FromRequest(request)

	_, tours, meta, err := handler.catalogService.ToursByTerm(request.Context(), locale, taxonomy, chi.URLParam(request, "slug"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tours, meta)
}

// # Blog Endpoints

/*
GET /api/v1/posts.

Description: Lists blog posts for the request's locale, newest first.

Response:
  - 200: []Post with pagination metadata (empty list when the content source is down)
*/
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	locale := requestLocale(request)
	params := pagination.FromRequest(request)

	posts, meta, err := handler.catalogService.ListPosts(request.Context(), locale, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

// # Request Helpers

// requestLocale resolves the effective locale: an explicit ?locale= override
// wins over the locale the path router derived.
func requestLocale(request *http.Request) i18n.Locale {
	if override, ok := i18n.Parse(request.URL.Query().Get("locale")); ok {
		return override
	}
	return ctxutil.GetLocale(request.Context())
}

// termFilter parses the optional taxonomy filter parameters
// (?activity=3,7&destination=12) into term-ID sets.
func termFilter(request *http.Request) map[i18n.Taxonomy][]int {
	values := request.URL.Query()

	var filter map[i18n.Taxonomy][]int
	for _, taxonomy := range []i18n.Taxonomy{i18n.TaxonomyActivity, i18n.TaxonomyDestination, i18n.TaxonomyTag} {
		ids := query.IntSlice(query.StringSlice(values.Get(string(taxonomy))))
		if len(ids) == 0 {
			continue
		}
		if filter == nil {
			filter = make(map[i18n.Taxonomy][]int)
		}
		filter[taxonomy] = ids
	}

	return filter
}
