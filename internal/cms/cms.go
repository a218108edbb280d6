// Copyright (c) 2026 Tripgate. All rights reserved.

/*
Package cms is the read boundary against the headless content source.

It owns the typed content records (tours, taxonomy terms, posts, business
reviews), the canonical cache keys for content reads, and the per-request
dedup scope that collapses identical fetches within one render.

Architecture:

  - types (this file): immutable snapshots decoded from the wire payloads.
    Records are never mutated after decoding; localization returns copies.
  - scope.go: per-request fetch deduplication (first caller wins, failures
    are cached for the remainder of the scope).
  - client.go: HTTP operations with pagination and graceful degradation.
*/
package cms

import (
	"time"

	"github.com/nguyenvo/tripgate/internal/i18n"
)

// Tour is one bookable tour as published by the content source.
//
// All free-text fields are already normalized (markup stripped, entities
// decoded) by the time a Tour leaves this package.
type Tour struct {
	ID             int         `json:"id"`
	Title          string      `json:"title"`
	Slug           string      `json:"slug"`
	Content        string      `json:"content"`
	Excerpt        string      `json:"excerpt"`
	DurationDays   int         `json:"duration_days"`
	ActivityIDs    []int       `json:"activity_ids"`
	DestinationIDs []int       `json:"destination_ids"`
	TagIDs         []int       `json:"tag_ids"`
	Date           time.Time   `json:"date"`
	Locale         i18n.Locale `json:"locale"`
}

// HasTaxonomyAssignment reports whether the tour carries any explicit
// activity or destination terms. Tours without one fall back to
// keyword-based classification.
func (t Tour) HasTaxonomyAssignment() bool {
	return len(t.ActivityIDs) > 0 || len(t.DestinationIDs) > 0
}

// TaxonomyTerm is a named classification attachable to a tour.
//
// The slug is stable and locale-invariant; Name holds the source-language
// name. The locale-dependent display name is computed, never stored.
type TaxonomyTerm struct {
	ID          int           `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Taxonomy    i18n.Taxonomy `json:"taxonomy"`
}

// Localized returns a copy of the term with Name replaced by the locale
// dictionary entry for its slug. A missing entry falls back to the source
// name — the input term is never mutated either way.
func (t TaxonomyTerm) Localized(locale i18n.Locale) TaxonomyTerm {
	localized := t
	if name, ok := i18n.DisplayName(locale, t.Taxonomy, t.Slug); ok {
		localized.Name = name
	}
	return localized
}

// Post is one blog/news entry from the content source.
type Post struct {
	ID      int         `json:"id"`
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	Excerpt string      `json:"excerpt"`
	Date    time.Time   `json:"date"`
	Locale  i18n.Locale `json:"locale"`
}

// BusinessReview is one third-party business review, both as pulled from the
// places API and as pushed to the content source's google-reviews resource.
type BusinessReview struct {
	Author       string  `json:"author"`
	Rating       float64 `json:"rating"`
	Text         string  `json:"text"`
	RelativeTime string  `json:"relative_time"`
	AvatarURL    string  `json:"avatar_url"`
}

// Page is one window of a paginated collection read.
//
// Total and TotalPages come from the source's reported count, not from
// len(Items): the final page may be partial.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
