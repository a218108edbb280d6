// Copyright (c) 2026 Tripgate. All rights reserved.

/*
Package reviews keeps a best-effort cache of third-party business reviews
and the authenticated sync pipeline that refreshes it.

The public endpoint never blocks a page render on the places API: it serves
whatever the cache holds, degrading to null. The sync trigger is the only
path that talks to the places API, and it is guarded by a shared-secret key.
*/
package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nguyenvo/tripgate/internal/cms"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
)

// Store persists the review snapshot between syncs.
type Store interface {
	// Save replaces the cached snapshot and records the sync time.
	Save(ctx context.Context, snapshot []cms.BusinessReview, ttl time.Duration) error

	// Load returns the cached snapshot. A cache miss is (nil, nil).
	Load(ctx context.Context) ([]cms.BusinessReview, error)

	// Clear drops the cached snapshot.
	Clear(ctx context.Context) error

	// LastSync returns the time of the most recent successful sync; ok is
	// false when no sync has happened within the bookkeeping TTL.
	LastSync(ctx context.Context) (time.Time, bool, error)
}

// RedisStore is the [Store] backed by the shared Redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an established Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save writes the snapshot and the sync timestamp under one TTL, so the
// bookkeeping expires together with the data it describes.
func (s *RedisStore) Save(ctx context.Context, snapshot []cms.BusinessReview, ttl time.Duration) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("reviews: encode snapshot: %w", err)
	}

	if err := s.client.Set(ctx, constants.RedisKeyReviewCache, payload, ttl).Err(); err != nil {
		return fmt.Errorf("reviews: cache snapshot: %w", err)
	}
	if err := s.client.Set(ctx, constants.RedisKeyReviewLastSync, time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("reviews: record sync time: %w", err)
	}

	return nil
}

// Load reads the snapshot back; an expired or absent key is a miss, not an
// error.
func (s *RedisStore) Load(ctx context.Context) ([]cms.BusinessReview, error) {
	payload, err := s.client.Get(ctx, constants.RedisKeyReviewCache).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reviews: read cache: %w", err)
	}

	var snapshot []cms.BusinessReview
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("reviews: decode cache: %w", err)
	}

	return snapshot, nil
}

// Clear drops the snapshot key. The last-sync marker stays: "cache cleared"
// and "never synced" remain distinguishable.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, constants.RedisKeyReviewCache).Err(); err != nil {
		return fmt.Errorf("reviews: clear cache: %w", err)
	}
	return nil
}

// LastSync reads the sync timestamp marker.
func (s *RedisStore) LastSync(ctx context.Context) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, constants.RedisKeyReviewLastSync).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reviews: read sync time: %w", err)
	}

	syncedAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reviews: malformed sync time %q: %w", raw, err)
	}

	return syncedAt, true, nil
}
