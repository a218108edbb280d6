// Copyright (c) 2026 Tripgate. All rights reserved.

package reviews

import (
	"context"
	"log/slog"
	"time"

	"github.com/nguyenvo/tripgate/internal/cms"
)

// PlacesSource pulls the current review snapshot from the third party.
type PlacesSource interface {
	Fetch(ctx context.Context) ([]cms.BusinessReview, error)
}

// Pusher mirrors a snapshot into the content source.
type Pusher interface {
	PushReviews(ctx context.Context, reviews []cms.BusinessReview) error
}

// Service coordinates the cache, the places API, and the content source.
type Service struct {
	places   PlacesSource
	pusher   Pusher
	store    Store
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs the review sync service.
func NewService(places PlacesSource, pusher Pusher, store Store, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		places:   places,
		pusher:   pusher,
		store:    store,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Cached returns the cached snapshot, or nil on any failure.
//
// This feeds a public best-effort endpoint: a broken cache must degrade to
// "no reviews", never to an error the renderer has to handle.
func (service *Service) Cached(ctx context.Context) []cms.BusinessReview {
	snapshot, err := service.store.Load(ctx)
	if err != nil {
		service.logger.WarnContext(ctx, "review_cache_read_failed", slog.Any("error", err))
		return nil
	}
	return snapshot
}

// SyncReport summarizes one completed sync run.
type SyncReport struct {
	Count    int       `json:"count"`
	SyncedAt time.Time `json:"synced_at"`
}

// Sync pulls the snapshot from the places API, mirrors it into the content
// source, and refreshes the cache.
//
// The pull is authoritative: a pull failure aborts the run. The content-source
// push and the cache write are best-effort mirrors of an already-obtained
// snapshot, so their failures are logged but do not fail the sync.
func (service *Service) Sync(ctx context.Context) (SyncReport, error) {
	snapshot, err := service.places.Fetch(ctx)
	if err != nil {
		return SyncReport{}, err
	}

	if err := service.pusher.PushReviews(ctx, snapshot); err != nil {
		service.logger.ErrorContext(ctx, "review_push_failed", slog.Any("error", err))
	}

	if err := service.store.Save(ctx, snapshot, service.cacheTTL); err != nil {
		service.logger.ErrorContext(ctx, "review_cache_write_failed", slog.Any("error", err))
	}

	report := SyncReport{Count: len(snapshot), SyncedAt: time.Now().UTC()}
	service.logger.InfoContext(ctx, "reviews_synced", slog.Int("count", report.Count))
	return report, nil
}

// Status describes the sync state for operators.
type Status struct {
	LastSync    *time.Time `json:"last_sync"`
	CachedCount int        `json:"cached_count"`
}

// Status reports when the last sync ran and how many reviews are cached.
func (service *Service) Status(ctx context.Context) Status {
	status := Status{CachedCount: len(service.Cached(ctx))}

	if syncedAt, ok, err := service.store.LastSync(ctx); err != nil {
		service.logger.WarnContext(ctx, "review_sync_time_read_failed", slog.Any("error", err))
	} else if ok {
		status.LastSync = &syncedAt
	}

	return status
}

// Clear drops the cached snapshot.
func (service *Service) Clear(ctx context.Context) error {
	return service.store.Clear(ctx)
}
