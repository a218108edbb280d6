// Copyright (c) 2026 Tripgate. All rights reserved.

package reviews_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvo/tripgate/internal/cms"
	"github.com/nguyenvo/tripgate/internal/reviews"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory [reviews.Store].
type fakeStore struct {
	snapshot []cms.BusinessReview
	syncedAt time.Time
	loadErr  error
	saveErr  error
}

func (f *fakeStore) Save(_ context.Context, snapshot []cms.BusinessReview, _ time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshot = snapshot
	f.syncedAt = time.Now().UTC()
	return nil
}

func (f *fakeStore) Load(context.Context) ([]cms.BusinessReview, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.snapshot, nil
}

func (f *fakeStore) Clear(context.Context) error {
	f.snapshot = nil
	return nil
}

func (f *fakeStore) LastSync(context.Context) (time.Time, bool, error) {
	return f.syncedAt, !f.syncedAt.IsZero(), nil
}

// fakePlaces returns a fixed snapshot or error.
type fakePlaces struct {
	snapshot []cms.BusinessReview
	err      error
}

func (f *fakePlaces) Fetch(context.Context) ([]cms.BusinessReview, error) {
	return f.snapshot, f.err
}

// fakePusher records pushed snapshots.
type fakePusher struct {
	pushed [][]cms.BusinessReview
	err    error
}

func (f *fakePusher) PushReviews(_ context.Context, reviews []cms.BusinessReview) error {
	if f.err != nil {
		return f.err
	}
	f.pushed = append(f.pushed, reviews)
	return nil
}

func sampleReviews() []cms.BusinessReview {
	return []cms.BusinessReview{
		{Author: "An", Rating: 5, Text: "Wonderful trip", RelativeTime: "a week ago"},
		{Author: "Mai", Rating: 4, Text: "Great guide", RelativeTime: "a month ago"},
	}
}

/*
TestSyncPullsPushesAndCaches verifies the happy-path pipeline order: places
pull, content-source push, cache write.
*/
func TestSyncPullsPushesAndCaches(t *testing.T) {
	store := &fakeStore{}
	pusher := &fakePusher{}
	service := reviews.NewService(&fakePlaces{snapshot: sampleReviews()}, pusher, store, time.Hour, discardLogger())

	report, err := service.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count)

	require.Len(t, pusher.pushed, 1)
	assert.Len(t, store.snapshot, 2)
}

/*
TestSyncPullFailureAborts verifies a places pull failure aborts the run
without touching the cache, while push/cache failures do not fail a run
whose pull succeeded.
*/
func TestSyncPullFailureAborts(t *testing.T) {
	store := &fakeStore{snapshot: sampleReviews()}
	service := reviews.NewService(&fakePlaces{err: errors.New("quota exceeded")}, &fakePusher{}, store, time.Hour, discardLogger())

	_, err := service.Sync(context.Background())
	require.Error(t, err)
	assert.Len(t, store.snapshot, 2, "cache must keep the previous snapshot")

	// Mirror failures are best-effort.
	store2 := &fakeStore{saveErr: errors.New("redis down")}
	service2 := reviews.NewService(&fakePlaces{snapshot: sampleReviews()}, &fakePusher{err: errors.New("cms down")}, store2, time.Hour, discardLogger())

	report, err := service2.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count)
}

/*
TestCachedDegradesToNil verifies a broken cache reads as "no reviews".
*/
func TestCachedDegradesToNil(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("redis down")}
	service := reviews.NewService(&fakePlaces{}, &fakePusher{}, store, time.Hour, discardLogger())

	assert.Nil(t, service.Cached(context.Background()))
}

func newTestHandler(store *fakeStore, syncKey string) *reviews.Handler {
	service := reviews.NewService(&fakePlaces{snapshot: sampleReviews()}, &fakePusher{}, store, time.Hour, discardLogger())
	return reviews.NewHandler(service, syncKey)
}

/*
TestGetReviewsNeverErrors verifies the public endpoint returns 200 with null
on an empty or broken cache, and 200 with the snapshot otherwise.
*/
func TestGetReviewsNeverErrors(t *testing.T) {
	broken := newTestHandler(&fakeStore{loadErr: errors.New("redis down")}, "")

	recorder := httptest.NewRecorder()
	broken.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "null\n", recorder.Body.String())

	populated := newTestHandler(&fakeStore{snapshot: sampleReviews()}, "")

	recorder = httptest.NewRecorder()
	populated.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Wonderful trip")
}

/*
TestSyncAuthorization verifies the shared-secret gate: wrong key, missing
key, and unconfigured key all reject with 401; the right key runs the sync.
*/
func TestSyncAuthorization(t *testing.T) {
	handler := newTestHandler(&fakeStore{}, "s3cret")

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"valid_key", "/sync?key=s3cret", http.StatusOK},
		{"wrong_key", "/sync?key=guess", http.StatusUnauthorized},
		{"missing_key", "/sync", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, tt.target, nil))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}

	// A gateway with no configured key accepts no key at all.
	unconfigured := newTestHandler(&fakeStore{}, "")
	recorder := httptest.NewRecorder()
	unconfigured.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/sync?key=anything", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestClearCache verifies the authenticated delete drops the snapshot.
*/
func TestClearCache(t *testing.T) {
	store := &fakeStore{snapshot: sampleReviews()}
	handler := newTestHandler(store, "s3cret")

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/sync?key=s3cret", nil))

	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, store.snapshot)
}

/*
TestPlacesClientFetch verifies decoding and field mapping of the details
response, and the rejection of a non-OK API status.
*/
func TestPlacesClientFetch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "place-1", r.URL.Query().Get("place_id"))
		assert.Equal(t, "api-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": {
				"reviews": [{
					"author_name": "An",
					"rating": 5,
					"text": "Wonderful trip",
					"relative_time_description": "a week ago",
					"profile_photo_url": "https://lh3.example.com/an.jpg"
				}]
			}
		}`))
	}))
	defer upstream.Close()

	client := reviews.NewPlacesClient(upstream.URL, "api-key", "place-1")

	snapshot, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "An", snapshot[0].Author)
	assert.Equal(t, 5.0, snapshot[0].Rating)
	assert.Equal(t, "a week ago", snapshot[0].RelativeTime)
	assert.Equal(t, "https://lh3.example.com/an.jpg", snapshot[0].AvatarURL)
}

/*
TestPlacesClientRejectsAPIError verifies an OVER_QUERY_LIMIT status is an
error even though the HTTP layer said 200.
*/
func TestPlacesClientRejectsAPIError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OVER_QUERY_LIMIT"}`))
	}))
	defer upstream.Close()

	client := reviews.NewPlacesClient(upstream.URL, "api-key", "place-1")

	_, err := client.Fetch(context.Background())
	assert.ErrorContains(t, err, "OVER_QUERY_LIMIT")
}
