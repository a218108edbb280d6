// Copyright (c) 2026 Tripgate. All rights reserved.

package cms

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nguyenvo/tripgate/internal/platform/ctxkey"
)

// # Render Scope (request deduplication)
//
// One Scope lives for exactly one top-level request. Within it, identical
// content reads (same canonical [CacheKey]) are collapsed to a single
// producer invocation; every caller shares the resolved value — or the
// resolved failure, so a failing source is hit once per render, not once
// per component. The scope is never shared across requests: it is created
// by [ScopeMiddleware] and discarded with the request context, which closes
// the stale-data leak a process-wide map would open.

// scopeResult is one settled cache entry.
type scopeResult struct {
	value     any
	err       error
	createdAt time.Time
}

// Scope collapses identical content reads within one request.
type Scope struct {
	group singleflight.Group

	mu      sync.RWMutex
	results map[string]scopeResult
}

// NewScope returns an empty dedup scope.
func NewScope() *Scope {
	return &Scope{results: make(map[string]scopeResult)}
}

// Do returns the scoped result for key, invoking producer only if no caller
// has settled the key yet.
//
// # Semantics
//
//   - First caller wins: concurrent callers for the same key block on one
//     in-flight producer (singleflight) and share its result.
//   - Settled entries are immutable: once a key resolves, later callers read
//     the stored value/error and the producer is never re-invoked.
//   - Failures settle too — repeat callers within the scope observe the same
//     failure instead of re-triggering the fetch.
func (s *Scope) Do(key string, producer func() (any, error)) (any, error) {
	s.mu.RLock()
	if settled, ok := s.results[key]; ok {
		s.mu.RUnlock()
		return settled.value, settled.err
	}
	s.mu.RUnlock()

	value, err, _ := s.group.Do(key, func() (any, error) {
		produced, produceErr := producer()

		s.mu.Lock()
		if _, exists := s.results[key]; !exists {
			s.results[key] = scopeResult{value: produced, err: produceErr, createdAt: time.Now()}
		}
		s.mu.Unlock()

		return produced, produceErr
	})

	return value, err
}

// Len reports how many keys have settled. Used by tests and debug logging.
func (s *Scope) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// # Context Plumbing

// WithScope returns a context carrying the given scope.
func WithScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRenderScope, scope)
}

// ScopeFromContext extracts the request's dedup scope.
//
// It returns nil outside a request (startup jobs, tests without the
// middleware); callers then fetch without deduplication rather than falling
// back to any shared state.
func ScopeFromContext(ctx context.Context) *Scope {
	scope, _ := ctx.Value(ctxkey.KeyRenderScope).(*Scope)
	return scope
}

// Resolve runs producer through the context's dedup scope under key,
// preserving the producer's concrete result type.
func Resolve[T any](ctx context.Context, key string, producer func() (T, error)) (T, error) {
	scope := ScopeFromContext(ctx)
	if scope == nil {
		return producer()
	}

	value, err := scope.Do(key, func() (any, error) {
		return producer()
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return value.(T), nil
}

// ScopeMiddleware attaches a fresh dedup scope to every inbound request.
//
// Scope construction is explicit and per-request: there is no process-global
// fallback map, so entries cannot leak between unrelated requests.
func ScopeMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := WithScope(request.Context(), NewScope())
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
