// Copyright (c) 2026 Tripgate. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters,
// how the resulting metadata is delivered in the API response envelope, and
// how in-memory lists are sliced into stable page windows.
package pagination

import (
	"net/http"

	"github.com/nguyenvo/tripgate/pkg/convert"
)

const (
	// DefaultPerPage is the number of items per page if not specified.
	DefaultPerPage = 12
	// MaxPerPage is the upper bound for items per page to prevent system abuse.
	MaxPerPage = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and per-page values from a request's query string.
type Params struct {
	Page    int
	PerPage int
}

// Offset returns the zero-based item offset derived from Page and PerPage.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// Total comes from the source's reported count, never from the length of the
// returned page (the last page may be partial). TotalPages is
// ceil(total / perPage).
func NewMeta(page, perPage, total int) Meta {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	return Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Window returns the page slice [start, end) of items, clipped to the list
// bounds, together with the metadata for the full list.
//
// A page beyond the last one yields an empty (non-nil) slice, never an error:
// "past the end" is a normal user-visible state for list views.
func Window[T any](items []T, page, perPage int) ([]T, Meta) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	meta := NewMeta(page, perPage, len(items))

	start := Params{Page: page, PerPage: perPage}.Offset()
	if start >= len(items) {
		return []T{}, meta
	}

	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], meta
}

// FromRequest parses "page" and "per_page" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultPerPage], or [MaxPerPage].
func FromRequest(r *http.Request) Params {
	page := convert.ToIntD(r.URL.Query().Get("page"), DefaultPage)
	perPage := convert.ToIntD(r.URL.Query().Get("per_page"), DefaultPerPage)

	if page < 1 {
		page = DefaultPage
	}

	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}

	return Params{Page: page, PerPage: perPage}
}
