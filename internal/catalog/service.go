// Copyright (c) 2026 Tripgate. All rights reserved.

package catalog

import (
	"context"
	"log/slog"

	"github.com/nguyenvo/tripgate/internal/cms"
	"github.com/nguyenvo/tripgate/internal/i18n"
	"github.com/nguyenvo/tripgate/internal/platform/apperr"
	"github.com/nguyenvo/tripgate/pkg/pagination"
	"github.com/nguyenvo/tripgate/pkg/slice"
)

// ContentSource is the read surface of the content client the catalog needs.
type ContentSource interface {
	Tours(ctx context.Context, locale i18n.Locale, opts cms.ListOptions) (cms.Page[cms.Tour], error)
	TourBySlug(ctx context.Context, locale i18n.Locale, slug string) (cms.Tour, error)
	Terms(ctx context.Context, locale i18n.Locale, taxonomy i18n.Taxonomy) ([]cms.TaxonomyTerm, error)
	Posts(ctx context.Context, locale i18n.Locale, opts cms.ListOptions) (cms.Page[cms.Post], error)
}

// Service derives the browsable catalogue views.
type Service struct {
	source ContentSource
	logger *slog.Logger
}

// NewService constructs the catalog service.
func NewService(source ContentSource, logger *slog.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// # Tour Listings

// ListTours returns one source-paginated page of tours.
//
// A content-source failure degrades to an empty page: list views render a
// "no content" state instead of failing the request.
func (service *Service) ListTours(ctx context.Context, locale i18n.Locale, params pagination.Params, filter map[i18n.Taxonomy][]int) ([]cms.Tour, pagination.Meta, error) {
	page, err := service.source.Tours(ctx, locale, cms.ListOptions{
		Page:    params.Page,
		PerPage: params.PerPage,
		OrderBy: "date",
		Order:   "desc",
		TermIDs: filter,
	})
	if err != nil {
		if service.degraded(ctx, "tours", err) {
			return []cms.Tour{}, pagination.NewMeta(params.Page, params.PerPage, 0), nil
		}
		return nil, pagination.Meta{}, err
	}

	meta := pagination.Meta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
	return page.Items, meta, nil
}

// GetTour returns one tour by slug. Not-found surfaces to the caller.
func (service *Service) GetTour(ctx context.Context, locale i18n.Locale, slug string) (cms.Tour, error) {
	return service.source.TourBySlug(ctx, locale, slug)
}

// # Duration Views

// Durations returns the fixed bucket table.
func (service *Service) Durations() []DurationBucket {
	return DurationBuckets()
}

// ToursByDuration returns the page of tours whose duration falls in the
// named bucket.
//
// An unknown bucket slug is [apperr.NotFound]; a known bucket with zero
// tours is an empty page. The two conditions never collapse into one.
func (service *Service) ToursByDuration(ctx context.Context, locale i18n.Locale, bucketSlug string, params pagination.Params) (DurationBucket, []cms.Tour, pagination.Meta, error) {
	bucket, ok := BucketBySlug(bucketSlug)
	if !ok {
		return DurationBucket{}, nil, pagination.Meta{}, apperr.NotFound("Duration category")
	}

	tours, err := service.allTours(ctx, locale)
	if err != nil {
		return DurationBucket{}, nil, pagination.Meta{}, err
	}

	matched := slice.Filter(tours, func(tour cms.Tour) bool {
		return bucket.Contains(tour.DurationDays)
	})

	window, meta := pagination.Window(matched, params.Page, params.PerPage)
	return bucket, window, meta, nil
}

// # Taxonomy Views

// TermsByTaxonomy returns the taxonomy's terms with locale-resolved display
// names. Source failure degrades to an empty list.
func (service *Service) TermsByTaxonomy(ctx context.Context, locale i18n.Locale, taxonomy i18n.Taxonomy) ([]cms.TaxonomyTerm, error) {
	terms, err := service.source.Terms(ctx, locale, taxonomy)
	if err != nil {
		if service.degraded(ctx, string(taxonomy), err) {
			return []cms.TaxonomyTerm{}, nil
		}
		return nil, err
	}

	return slice.Map(terms, func(term cms.TaxonomyTerm) cms.TaxonomyTerm {
		return term.Localized(locale)
	}), nil
}

// ToursByTerm returns the page of tours belonging to one taxonomy term.
//
// Tours with an explicit assignment are matched by term ID; tours without
// any assignment fall back to keyword classification of their title, so a
// catalogue that was never hand-tagged still produces populated categories.
func (service *Service) ToursByTerm(ctx context.Context, locale i18n.Locale, taxonomy i18n.Taxonomy, termSlug string, params pagination.Params) (cms.TaxonomyTerm, []cms.Tour, pagination.Meta, error) {
	terms, err := service.source.Terms(ctx, locale, taxonomy)
	if err != nil {
		return cms.TaxonomyTerm{}, nil, pagination.Meta{}, err
	}

	var requested cms.TaxonomyTerm
	found := false
	for _, term := range terms {
		if term.Slug == termSlug {
			requested = term
			found = true
			break
		}
	}
	if !found {
		return cms.TaxonomyTerm{}, nil, pagination.Meta{}, apperr.NotFound("Category")
	}

	tours, err := service.allTours(ctx, locale)
	if err != nil {
		return cms.TaxonomyTerm{}, nil, pagination.Meta{}, err
	}

	matcher := NewKeywordMatcher(terms)
	matched := slice.Filter(tours, func(tour cms.Tour) bool {
		if tour.HasTaxonomyAssignment() {
			return containsID(explicitIDs(tour, taxonomy), requested.ID)
		}
		if fallback, ok := matcher.Match(tour.Title); ok {
			return fallback.ID == requested.ID
		}
		return false
	})

	window, meta := pagination.Window(matched, params.Page, params.PerPage)
	return requested.Localized(locale), window, meta, nil
}

// # Posts

// ListPosts returns one source-paginated page of blog posts, degrading to an
// empty page on source failure.
func (service *Service) ListPosts(ctx context.Context, locale i18n.Locale, params pagination.Params) ([]cms.Post, pagination.Meta, error) {
	page, err := service.source.Posts(ctx, locale, cms.ListOptions{
		Page:    params.Page,
		PerPage: params.PerPage,
		OrderBy: "date",
		Order:   "desc",
	})
	if err != nil {
		if service.degraded(ctx, "posts", err) {
			return []cms.Post{}, pagination.NewMeta(params.Page, params.PerPage, 0), nil
		}
		return nil, pagination.Meta{}, err
	}

	meta := pagination.Meta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
	return page.Items, meta, nil
}

// # Internals

// allTours drains every source page of the locale's tours for in-memory
// classification. Page reads go through the dedup scope, so one render
// classifying several views drains the source once.
func (service *Service) allTours(ctx context.Context, locale i18n.Locale) ([]cms.Tour, error) {
	var tours []cms.Tour

	page := 1
	for {
		result, err := service.source.Tours(ctx, locale, cms.ListOptions{
			Page:    page,
			PerPage: pagination.MaxPerPage,
			OrderBy: "date",
			Order:   "desc",
		})
		if err != nil {
			if service.degraded(ctx, "tours", err) {
				return []cms.Tour{}, nil
			}
			return nil, err
		}

		tours = append(tours, result.Items...)
		if page >= result.TotalPages || len(result.Items) == 0 {
			return tours, nil
		}
		page++
	}
}

// degraded reports whether err is a recoverable source outage, logging it
// once at the point of recovery.
func (service *Service) degraded(ctx context.Context, resource string, err error) bool {
	if !apperr.IsUnavailable(err) {
		return false
	}

	service.logger.WarnContext(ctx, "content_source_degraded",
		slog.String("resource", resource),
		slog.Any("error", err),
	)
	return true
}

// explicitIDs returns the tour's assigned term IDs for one taxonomy.
func explicitIDs(tour cms.Tour, taxonomy i18n.Taxonomy) []int {
	switch taxonomy {
	case i18n.TaxonomyActivity:
		return tour.ActivityIDs
	case i18n.TaxonomyDestination:
		return tour.DestinationIDs
	case i18n.TaxonomyTag:
		return tour.TagIDs
	default:
		return nil
	}
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
