// Copyright (c) 2026 Tripgate. All rights reserved.

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvo/tripgate/internal/catalog"
)

/*
TestBucketForDuration verifies the boundary days of every bucket.
*/
func TestBucketForDuration(t *testing.T) {
	tests := []struct {
		days int
		slug string
	}{
		{1, "single-day"},
		{2, "short-breaks"},
		{4, "short-breaks"},
		{5, "weeklong"},
		{8, "weeklong"},
		{9, "extended-journeys"},
		{29, "extended-journeys"},
		{30, "grand-voyages"},
		{365, "grand-voyages"},
	}

	for _, tt := range tests {
		bucket, ok := catalog.BucketForDuration(tt.days)
		require.True(t, ok, "days=%d", tt.days)
		assert.Equal(t, tt.slug, bucket.Slug, "days=%d", tt.days)
	}
}

/*
TestBucketForDurationNonPositive verifies that durations outside the table's
domain are rejected rather than misfiled.
*/
func TestBucketForDurationNonPositive(t *testing.T) {
	for _, days := range []int{0, -1, -30} {
		_, ok := catalog.BucketForDuration(days)
		assert.False(t, ok, "days=%d", days)
	}
}

/*
TestBucketsPartition verifies the table covers every positive duration with
exactly one bucket: no gaps, no overlaps.
*/
func TestBucketsPartition(t *testing.T) {
	buckets := catalog.DurationBuckets()

	for days := 1; days <= 400; days++ {
		matches := 0
		for _, bucket := range buckets {
			if bucket.Contains(days) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "days=%d", days)
	}
}

/*
TestBucketBySlug distinguishes an unknown category from an empty one: an
unknown slug must report false so the HTTP layer can return 404.
*/
func TestBucketBySlug(t *testing.T) {
	bucket, ok := catalog.BucketBySlug("weeklong")
	require.True(t, ok)
	assert.Equal(t, 5, bucket.MinDays)
	assert.Equal(t, 8, bucket.MaxDays)

	_, ok = catalog.BucketBySlug("fortnight")
	assert.False(t, ok)
}

/*
TestDurationBucketsIsolated verifies callers cannot mutate the shared table
through the returned slice.
*/
func TestDurationBucketsIsolated(t *testing.T) {
	first := catalog.DurationBuckets()
	first[0].Slug = "mutated"

	second := catalog.DurationBuckets()
	assert.Equal(t, "single-day", second[0].Slug)
}
