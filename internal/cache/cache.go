// Package cache is a read-through snapshot cache over the record store.
//
// The cache is an injected instance, not package state, so tests and services
// get isolated copies. It is process-local on purpose: a write in one process
// leaves other processes serving data up to one TTL old. That staleness is an
// accepted property of the dashboard, not a bug to fix with distributed
// invalidation.
package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL matches the historical 60-second sheet cache window.
const DefaultTTL = 60 * time.Second

// Resource caches one list-shaped dataset.
//
// On a fetch failure classified as transient (connection saturation or
// timeout, the store-side analogue of a rate limit) a stale snapshot, when
// present, is served instead of the error. Any other failure propagates.
type Resource[T any] struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	data      []T
	fetchedAt time.Time
	valid     bool
}

// NewResource creates an empty resource cache. The clock is injectable for
// tests; pass time.Now in production.
func NewResource[T any](ttl time.Duration, now func() time.Time) *Resource[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Resource[T]{ttl: ttl, now: now}
}

// Get returns the cached snapshot while it is fresh, otherwise fetches.
// Callers must treat the returned slice as read-only; it is shared between
// callers until the next refresh.
func (r *Resource[T]) Get(ctx context.Context, fetch func(context.Context) ([]T, error)) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.valid && r.now().Sub(r.fetchedAt) < r.ttl {
		return r.data, nil
	}

	data, err := fetch(ctx)
	if err != nil {
		// Stale-on-error: an expired snapshot beats failing the dashboard
		// when the store is merely saturated.
		if r.data != nil && isTransient(err) {
			return r.data, nil
		}
		return nil, err
	}

	r.data = data
	r.fetchedAt = r.now()
	r.valid = true
	return r.data, nil
}

// Invalidate forces the next Get to fetch. The stale snapshot is kept so the
// transient-error fallback still has something to serve.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.valid = false
}
