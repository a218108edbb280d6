// Copyright (c) 2026 Tripgate. All rights reserved.

package cms_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvo/tripgate/internal/cms"
	"github.com/nguyenvo/tripgate/internal/i18n"
	"github.com/nguyenvo/tripgate/internal/platform/apperr"
)

const toursBody = `[
	{
		"id": 11,
		"slug": "ha-long-bay-cruise",
		"title": {"rendered": "<p>Ha Long Bay &amp; Beyond</p>"},
		"content": {"rendered": "<div><strong>3 days</strong> aboard a junk boat</div>"},
		"excerpt": {"rendered": "Vietnam&#8217;s iconic bay\n"},
		"date": "2025-11-02T09:30:00",
		"lang": "en",
		"activities": [3],
		"destinations": [7],
		"tags": [],
		"acf": {"duration_days": 3}
	}
]`

// newCMSServer returns a fake content source and a client pointed at it.
func newCMSServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *cms.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, cms.NewClient(cms.ClientConfig{BaseURL: server.URL})
}

/*
TestClient_Tours verifies decoding, text normalization, and header-driven
pagination totals.
*/
func TestClient_Tours(t *testing.T) {
	_, client := newCMSServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/tours", request.URL.Path)
		assert.Equal(t, "en", request.URL.Query().Get("lang"))
		assert.Equal(t, "2", request.URL.Query().Get("page"))
		assert.Equal(t, "10", request.URL.Query().Get("per_page"))

		writer.Header().Set("X-WP-Total", "21")
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(toursBody))
	})

	page, err := client.Tours(context.Background(), i18n.LocaleEN, cms.ListOptions{Page: 2, PerPage: 10})
	require.NoError(t, err)

	// Total comes from the count header, not the partial page.
	assert.Equal(t, 21, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 1)

	tour := page.Items[0]
	assert.Equal(t, 11, tour.ID)
	assert.Equal(t, "Ha Long Bay & Beyond", tour.Title)
	assert.Equal(t, "3 days aboard a junk boat", tour.Content)
	assert.Equal(t, "Vietnam’s iconic bay", tour.Excerpt)
	assert.Equal(t, 3, tour.DurationDays)
	assert.Equal(t, []int{3}, tour.ActivityIDs)
	assert.Equal(t, i18n.LocaleEN, tour.Locale)
	assert.True(t, tour.HasTaxonomyAssignment())
}

/*
TestClient_Tours_Deduplication verifies that identical reads within one
scope hit the source exactly once, different parameter order included.
*/
func TestClient_Tours_Deduplication(t *testing.T) {
	var hits int
	_, client := newCMSServer(t, func(writer http.ResponseWriter, request *http.Request) {
		hits++
		writer.Header().Set("X-WP-Total", "1")
		_, _ = writer.Write([]byte(toursBody))
	})

	ctx := cms.WithScope(context.Background(), cms.NewScope())

	for i := 0; i < 3; i++ {
		_, err := client.Tours(ctx, i18n.LocaleEN, cms.ListOptions{Page: 1, PerPage: 10})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, hits)
}

/*
TestClient_Tours_Unavailable verifies the graceful degradation contract on
transport and status failures.
*/
func TestClient_Tours_Unavailable(t *testing.T) {
	_, client := newCMSServer(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Tours(context.Background(), i18n.LocaleEN, cms.ListOptions{})
	require.Error(t, err)
	assert.True(t, apperr.IsUnavailable(err))

	// Connection refused (server closed) is the same condition.
	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	downClient := cms.NewClient(cms.ClientConfig{BaseURL: closed.URL})

	_, err = downClient.Tours(context.Background(), i18n.LocaleEN, cms.ListOptions{})
	require.Error(t, err)
	assert.True(t, apperr.IsUnavailable(err))
}

/*
TestClient_TourBySlug verifies slug lookup and the not-found condition.
*/
func TestClient_TourBySlug(t *testing.T) {
	_, client := newCMSServer(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("slug") == "ha-long-bay-cruise" {
			writer.Header().Set("X-WP-Total", "1")
			_, _ = writer.Write([]byte(toursBody))
			return
		}
		writer.Header().Set("X-WP-Total", "0")
		_, _ = writer.Write([]byte(`[]`))
	})

	tour, err := client.TourBySlug(context.Background(), i18n.LocaleEN, "ha-long-bay-cruise")
	require.NoError(t, err)
	assert.Equal(t, "ha-long-bay-cruise", tour.Slug)

	_, err = client.TourBySlug(context.Background(), i18n.LocaleEN, "no-such-tour")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestClient_Terms verifies taxonomy reads and name normalization.
*/
func TestClient_Terms(t *testing.T) {
	_, client := newCMSServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/activities", request.URL.Path)
		_, _ = writer.Write([]byte(`[{"id": 3, "slug": "city-tours", "name": "City Tours &amp; Walks", "description": ""}]`))
	})

	terms, err := client.Terms(context.Background(), i18n.LocaleEN, i18n.TaxonomyActivity)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "City Tours & Walks", terms[0].Name)
	assert.Equal(t, i18n.TaxonomyActivity, terms[0].Taxonomy)
}

/*
TestClient_BasicAuth verifies that credentials are attached only when both
values are configured.
*/
func TestClient_BasicAuth(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _, sawAuth = request.BasicAuth()
		writer.Header().Set("X-WP-Total", "0")
		_, _ = writer.Write([]byte(`[]`))
	}))
	defer server.Close()

	withAuth := cms.NewClient(cms.ClientConfig{BaseURL: server.URL, BasicAuthUser: "sync", BasicAuthPass: "secret"})
	_, err := withAuth.Tours(context.Background(), i18n.LocaleEN, cms.ListOptions{})
	require.NoError(t, err)
	assert.True(t, sawAuth)

	userOnly := cms.NewClient(cms.ClientConfig{BaseURL: server.URL, BasicAuthUser: "sync"})
	_, err = userOnly.Tours(context.Background(), i18n.LocaleEN, cms.ListOptions{})
	require.NoError(t, err)
	assert.False(t, sawAuth, "user without password must not produce an auth header")
}

/*
TestTaxonomyTerm_Localized verifies the non-mutating translation contract.
*/
func TestTaxonomyTerm_Localized(t *testing.T) {
	term := cms.TaxonomyTerm{Slug: "ha-long-bay", Name: "Ha Long Bay", Taxonomy: i18n.TaxonomyDestination}

	localized := term.Localized(i18n.LocaleZH)
	assert.Equal(t, "下龙湾", localized.Name)
	assert.Equal(t, "Ha Long Bay", term.Name, "input term must not be mutated")

	// No dictionary entry: the source name is retained unchanged.
	unknown := cms.TaxonomyTerm{Slug: "city-tours-x", Name: "City Tours X", Taxonomy: i18n.TaxonomyDestination}
	assert.Equal(t, "City Tours X", unknown.Localized(i18n.LocaleZH).Name)
}
