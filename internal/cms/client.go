// Copyright (c) 2026 Tripgate. All rights reserved.

package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nguyenvo/tripgate/internal/i18n"
	"github.com/nguyenvo/tripgate/internal/platform/apperr"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
	"github.com/nguyenvo/tripgate/pkg/htmltext"
	"github.com/nguyenvo/tripgate/pkg/pagination"
)

// # Wire Payloads
//
// The content source renders every text field as an HTML fragment wrapped in
// a {"rendered": "..."} object. These payload types exist only for decoding;
// the exported records in cms.go are the normalized form.

type renderedField struct {
	Rendered string `json:"rendered"`
}

type tourPayload struct {
	ID           int           `json:"id"`
	Slug         string        `json:"slug"`
	Title        renderedField `json:"title"`
	Content      renderedField `json:"content"`
	Excerpt      renderedField `json:"excerpt"`
	Date         string        `json:"date"`
	Lang         string        `json:"lang"`
	Activities   []int         `json:"activities"`
	Destinations []int         `json:"destinations"`
	Tags         []int         `json:"tags"`
	ACF          struct {
		DurationDays int `json:"duration_days"`
	} `json:"acf"`
}

type termPayload struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type postPayload struct {
	ID      int           `json:"id"`
	Slug    string        `json:"slug"`
	Title   renderedField `json:"title"`
	Excerpt renderedField `json:"excerpt"`
	Date    string        `json:"date"`
	Lang    string        `json:"lang"`
}

// cmsDateLayout is the zone-less timestamp format used by the source.
const cmsDateLayout = "2006-01-02T15:04:05"

// taxonomyResources maps taxonomy types to their REST collection names.
var taxonomyResources = map[i18n.Taxonomy]string{
	i18n.TaxonomyActivity:    "activities",
	i18n.TaxonomyDestination: "destinations",
	i18n.TaxonomyTag:         "tags",
}

// # Client

// Client performs typed reads against the headless content source.
//
// Every read builds a canonical cache key and goes through the request's
// dedup scope, normalizes free-text fields, and degrades transport failures
// to [apperr.Unavailable] — callers decide whether to surface or swallow.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authUser   string
	authPass   string
}

// ClientConfig carries the startup-resolved settings the client needs.
type ClientConfig struct {
	// BaseURL is the content source origin (scheme + host, no trailing slash).
	BaseURL string
	// BasicAuthUser / BasicAuthPass are attached only when both are set.
	BasicAuthUser string
	BasicAuthPass string
}

// NewClient constructs a content source client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: constants.CMSRequestTimeout},
		authUser:   cfg.BasicAuthUser,
		authPass:   cfg.BasicAuthPass,
	}
}

// ListOptions carries the filter parameters accepted by collection reads.
type ListOptions struct {
	Page    int
	PerPage int

	// OrderBy / Order forward the source's ordering parameters ("date",
	// "desc"). Empty values are omitted from the request.
	OrderBy string
	Order   string

	// TermIDs filters a collection by taxonomy term identifiers.
	TermIDs map[i18n.Taxonomy][]int
}

// params serializes the options (plus locale) into wire query parameters.
func (o ListOptions) params(locale i18n.Locale) url.Values {
	values := url.Values{}

	page := o.Page
	if page < 1 {
		page = pagination.DefaultPage
	}
	perPage := o.PerPage
	if perPage < 1 {
		perPage = pagination.DefaultPerPage
	}

	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	values.Set("lang", locale.String())

	if o.OrderBy != "" {
		values.Set("orderby", o.OrderBy)
	}
	if o.Order != "" {
		values.Set("order", o.Order)
	}

	for taxonomy, ids := range o.TermIDs {
		if resource, ok := taxonomyResources[taxonomy]; ok && len(ids) > 0 {
			values.Set(resource, joinInts(ids))
		}
	}

	return values
}

// # Read Operations

// Tours fetches one page of tours for the locale.
func (c *Client) Tours(ctx context.Context, locale i18n.Locale, opts ListOptions) (Page[Tour], error) {
	params := opts.params(locale)
	key := CacheKey("tours", params)

	return Resolve(ctx, key, func() (Page[Tour], error) {
		payloads, total, err := fetchCollection[tourPayload](ctx, c, "tours", params)
		if err != nil {
			return Page[Tour]{}, err
		}

		tours := make([]Tour, len(payloads))
		for i, payload := range payloads {
			tours[i] = tourFromPayload(payload, locale)
		}

		return newPage(tours, total, opts.PerPage), nil
	})
}

// TourBySlug fetches a single tour by its slug.
//
// A slug unknown to the source yields [apperr.NotFound].
func (c *Client) TourBySlug(ctx context.Context, locale i18n.Locale, slug string) (Tour, error) {
	params := url.Values{}
	params.Set("slug", slug)
	params.Set("lang", locale.String())
	key := CacheKey("tours/by-slug", params)

	return Resolve(ctx, key, func() (Tour, error) {
		payloads, _, err := fetchCollection[tourPayload](ctx, c, "tours", params)
		if err != nil {
			return Tour{}, err
		}
		if len(payloads) == 0 {
			return Tour{}, apperr.NotFound("Tour")
		}
		return tourFromPayload(payloads[0], locale), nil
	})
}

// Terms fetches every term of one taxonomy for the locale.
func (c *Client) Terms(ctx context.Context, locale i18n.Locale, taxonomy i18n.Taxonomy) ([]TaxonomyTerm, error) {
	resource, ok := taxonomyResources[taxonomy]
	if !ok {
		return nil, apperr.NotFound("Taxonomy")
	}

	params := url.Values{}
	params.Set("lang", locale.String())
	params.Set("per_page", strconv.Itoa(pagination.MaxPerPage))
	key := CacheKey(resource, params)

	return Resolve(ctx, key, func() ([]TaxonomyTerm, error) {
		payloads, _, err := fetchCollection[termPayload](ctx, c, resource, params)
		if err != nil {
			return nil, err
		}

		terms := make([]TaxonomyTerm, len(payloads))
		for i, payload := range payloads {
			terms[i] = TaxonomyTerm{
				ID:          payload.ID,
				Slug:        payload.Slug,
				Name:        htmltext.Clean(payload.Name),
				Description: htmltext.Clean(payload.Description),
				Taxonomy:    taxonomy,
			}
		}
		return terms, nil
	})
}

// Posts fetches one page of blog posts for the locale.
func (c *Client) Posts(ctx context.Context, locale i18n.Locale, opts ListOptions) (Page[Post], error) {
	params := opts.params(locale)
	key := CacheKey("posts", params)

	return Resolve(ctx, key, func() (Page[Post], error) {
		payloads, total, err := fetchCollection[postPayload](ctx, c, "posts", params)
		if err != nil {
			return Page[Post]{}, err
		}

		posts := make([]Post, len(payloads))
		for i, payload := range payloads {
			posts[i] = Post{
				ID:      payload.ID,
				Slug:    payload.Slug,
				Title:   htmltext.Clean(payload.Title.Rendered),
				Excerpt: htmltext.Clean(payload.Excerpt.Rendered),
				Date:    parseCMSDate(payload.Date),
				Locale:  localeOrDefault(payload.Lang),
			}
		}

		return newPage(posts, total, opts.PerPage), nil
	})
}

// BusinessReviews fetches the stored third-party reviews from the source's
// custom google-reviews resource.
func (c *Client) BusinessReviews(ctx context.Context) ([]BusinessReview, error) {
	key := CacheKey("google-reviews", nil)

	return Resolve(ctx, key, func() ([]BusinessReview, error) {
		reviews, _, err := fetchCollection[BusinessReview](ctx, c, "google-reviews", nil)
		return reviews, err
	})
}

// PushReviews replaces the google-reviews resource with a fresh snapshot.
//
// This is the one write operation: it bypasses the dedup scope (writes are
// never deduplicated) and is only reachable from the authenticated sync
// trigger.
func (c *Client) PushReviews(ctx context.Context, reviews []BusinessReview) error {
	body, err := json.Marshal(reviews)
	if err != nil {
		return apperr.Internal(err)
	}

	endpoint := c.baseURL + constants.CMSContentPath + "/google-reviews"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return apperr.Internal(err)
	}
	request.Header.Set("Content-Type", "application/json")
	c.applyAuth(request)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return apperr.Unavailable(err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return apperr.Unavailable(fmt.Errorf("cms: push reviews returned status %d", response.StatusCode))
	}

	return nil
}

// Ping verifies that the content source answers its REST index.
func (c *Client) Ping(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/wp-json", nil)
	if err != nil {
		return err
	}
	c.applyAuth(request)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("cms: ping failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode >= 500 {
		return fmt.Errorf("cms: ping returned status %d", response.StatusCode)
	}
	return nil
}

// # Transport

// fetchCollection performs one GET against a REST collection and decodes the
// JSON array, returning the source-reported total count.
func fetchCollection[T any](ctx context.Context, c *Client, resource string, params url.Values) ([]T, int, error) {
	endpoint := c.baseURL + constants.CMSContentPath + "/" + resource
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	request.Header.Set("Accept", "application/json")
	c.applyAuth(request)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, 0, apperr.Unavailable(err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		// Drain so the connection can be reused before reporting failure.
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 4096))
		return nil, 0, apperr.Unavailable(fmt.Errorf("cms: %s returned status %d", resource, response.StatusCode))
	}

	var items []T
	if err := json.NewDecoder(response.Body).Decode(&items); err != nil {
		return nil, 0, apperr.Unavailable(fmt.Errorf("cms: %s returned malformed JSON: %w", resource, err))
	}

	// The collection total comes from the count header; the page itself may
	// be partial. A missing header degrades to the page length.
	total := len(items)
	if raw := response.Header.Get(constants.HeaderTotalCount); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			total = parsed
		}
	}

	return items, total, nil
}

// applyAuth attaches basic-auth credentials when both are configured.
func (c *Client) applyAuth(request *http.Request) {
	if c.authUser != "" && c.authPass != "" {
		request.SetBasicAuth(c.authUser, c.authPass)
	}
}

// # Decoding Helpers

func tourFromPayload(payload tourPayload, locale i18n.Locale) Tour {
	return Tour{
		ID:             payload.ID,
		Slug:           payload.Slug,
		Title:          htmltext.Clean(payload.Title.Rendered),
		Content:        htmltext.Clean(payload.Content.Rendered),
		Excerpt:        htmltext.Clean(payload.Excerpt.Rendered),
		DurationDays:   payload.ACF.DurationDays,
		ActivityIDs:    payload.Activities,
		DestinationIDs: payload.Destinations,
		TagIDs:         payload.Tags,
		Date:           parseCMSDate(payload.Date),
		Locale:         localeOrDefault(payload.Lang),
	}
}

func newPage[T any](items []T, total, perPage int) Page[T] {
	if perPage < 1 {
		perPage = pagination.DefaultPerPage
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}
}

func parseCMSDate(raw string) time.Time {
	parsed, err := time.Parse(cmsDateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func localeOrDefault(raw string) i18n.Locale {
	if locale, ok := i18n.Parse(raw); ok {
		return locale
	}
	return i18n.Default()
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
