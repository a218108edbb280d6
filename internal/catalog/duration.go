// Copyright (c) 2026 Tripgate. All rights reserved.

/*
Package catalog derives browsable views from the flat tour catalogue.

It owns the two classification sub-algorithms (fixed duration buckets and
keyword-matched categories), the service that combines them with content
reads, and the renderer-facing HTTP handlers.

Classification is total by construction: every tour lands in exactly one
duration bucket, and an unmatched keyword lookup is "uncategorized", never
an error. "Category is unknown" and "category is empty" stay distinct
conditions throughout.
*/
package catalog

// DurationBucket is one fixed trip-length category.
//
// The five buckets are a static classification table, not CMS data: they
// partition the positive-integer day domain with no gaps or overlaps.
type DurationBucket struct {
	Slug        string `json:"slug"`
	Label       string `json:"label"`
	Description string `json:"description"`
	// MinDays..MaxDays is the inclusive day range; MaxDays 0 means unbounded.
	MinDays int `json:"min_days"`
	MaxDays int `json:"max_days"`
}

// durationBuckets is ordered shortest-first; order is part of the public
// listing contract.
var durationBuckets = []DurationBucket{
	{
		Slug:        "single-day",
		Label:       "Single Day",
		Description: "Day trips and city escapes that fit into one day.",
		MinDays:     1,
		MaxDays:     1,
	},
	{
		Slug:        "short-breaks",
		Label:       "Short Breaks",
		Description: "Two to four day getaways for a long weekend.",
		MinDays:     2,
		MaxDays:     4,
	},
	{
		Slug:        "weeklong",
		Label:       "Weeklong Trips",
		Description: "Five to eight day journeys covering a full region.",
		MinDays:     5,
		MaxDays:     8,
	},
	{
		Slug:        "extended-journeys",
		Label:       "Extended Journeys",
		Description: "Nine to twenty-nine day in-depth itineraries.",
		MinDays:     9,
		MaxDays:     29,
	},
	{
		Slug:        "grand-voyages",
		Label:       "Grand Voyages",
		Description: "Thirty days and beyond for the complete experience.",
		MinDays:     30,
		MaxDays:     0,
	},
}

// DurationBuckets returns the fixed bucket table, shortest-first.
func DurationBuckets() []DurationBucket {
	buckets := make([]DurationBucket, len(durationBuckets))
	copy(buckets, durationBuckets)
	return buckets
}

// Contains reports whether days falls in the bucket's inclusive range.
func (b DurationBucket) Contains(days int) bool {
	if days < b.MinDays {
		return false
	}
	return b.MaxDays == 0 || days <= b.MaxDays
}

// BucketForDuration maps a tour duration to its bucket.
//
// It reports false only for non-positive durations, which the table does
// not cover.
func BucketForDuration(days int) (DurationBucket, bool) {
	if days < 1 {
		return DurationBucket{}, false
	}

	for _, bucket := range durationBuckets {
		if bucket.Contains(days) {
			return bucket, true
		}
	}

	// Unreachable: the last bucket is unbounded.
	return DurationBucket{}, false
}

// BucketBySlug resolves a bucket by its slug.
//
// An unknown slug reports false — "bucket not found" is a distinct condition
// from "bucket has zero tours" and maps to 404 at the HTTP surface.
func BucketBySlug(slug string) (DurationBucket, bool) {
	for _, bucket := range durationBuckets {
		if bucket.Slug == slug {
			return bucket, true
		}
	}
	return DurationBucket{}, false
}
