// Copyright (c) 2026 Tripgate. All rights reserved.

package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nguyenvo/tripgate/internal/cms"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
)

// PlacesClient pulls business reviews from the places details API.
type PlacesClient struct {
	baseURL string
	apiKey  string
	placeID string
	client  *http.Client
}

// NewPlacesClient constructs a places API client for one business listing.
func NewPlacesClient(baseURL, apiKey, placeID string) *PlacesClient {
	return &PlacesClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		placeID: placeID,
		client:  &http.Client{Timeout: constants.CMSRequestTimeout},
	}
}

// placeDetailsPayload mirrors the slice of the details response we consume.
type placeDetailsPayload struct {
	Status string `json:"status"`
	Result struct {
		Reviews []struct {
			AuthorName      string  `json:"author_name"`
			Rating          float64 `json:"rating"`
			Text            string  `json:"text"`
			RelativeTime    string  `json:"relative_time_description"`
			ProfilePhotoURL string  `json:"profile_photo_url"`
		} `json:"reviews"`
	} `json:"result"`
}

// Fetch pulls the listing's current reviews.
func (p *PlacesClient) Fetch(ctx context.Context) ([]cms.BusinessReview, error) {
	if p.apiKey == "" || p.placeID == "" {
		return nil, fmt.Errorf("reviews: places API key or place ID not configured")
	}

	params := url.Values{}
	params.Set("place_id", p.placeID)
	params.Set("fields", "reviews,rating")
	params.Set("key", p.apiKey)
	endpoint := p.baseURL + "/details/json?" + params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	response, err := p.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("reviews: places API unreachable: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reviews: places API returned status %d", response.StatusCode)
	}

	var payload placeDetailsPayload
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("reviews: decode places response: %w", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("reviews: places API status %q", payload.Status)
	}

	snapshot := make([]cms.BusinessReview, 0, len(payload.Result.Reviews))
	for _, review := range payload.Result.Reviews {
		snapshot = append(snapshot, cms.BusinessReview{
			Author:       review.AuthorName,
			Rating:       review.Rating,
			Text:         review.Text,
			RelativeTime: review.RelativeTime,
			AvatarURL:    review.ProfilePhotoURL,
		})
	}

	return snapshot, nil
}
