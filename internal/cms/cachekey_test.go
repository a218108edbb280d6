// Copyright (c) 2026 Tripgate. All rights reserved.

package cms_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyenvo/tripgate/internal/cms"
)

/*
TestCacheKey_OrderInvariance verifies that structurally identical parameter
sets collide to the same key regardless of insertion order.
*/
func TestCacheKey_OrderInvariance(t *testing.T) {
	first := url.Values{}
	first.Set("per_page", "12")
	first.Set("lang", "en")
	first.Set("page", "2")

	second := url.Values{}
	second.Set("page", "2")
	second.Set("per_page", "12")
	second.Set("lang", "en")

	assert.Equal(t, cms.CacheKey("tours", first), cms.CacheKey("tours", second))
}

/*
TestCacheKey_Discrimination verifies that endpoint and parameter differences
produce distinct keys.
*/
func TestCacheKey_Discrimination(t *testing.T) {
	params := url.Values{}
	params.Set("lang", "en")

	base := cms.CacheKey("tours", params)

	// Different endpoint
	assert.NotEqual(t, base, cms.CacheKey("posts", params))

	// Different value
	other := url.Values{}
	other.Set("lang", "zh")
	assert.NotEqual(t, base, cms.CacheKey("tours", other))

	// Extra parameter
	extra := url.Values{}
	extra.Set("lang", "en")
	extra.Set("page", "2")
	assert.NotEqual(t, base, cms.CacheKey("tours", extra))
}

/*
TestCacheKey_Canonical pins the canonical serialization: sorted keys and no
parameters at all.
*/
func TestCacheKey_Canonical(t *testing.T) {
	assert.Equal(t, "google-reviews", cms.CacheKey("google-reviews", nil))

	params := url.Values{}
	params.Set("page", "1")
	params.Set("lang", "en")
	assert.Equal(t, "tours?lang=en&page=1", cms.CacheKey("tours", params))
}
