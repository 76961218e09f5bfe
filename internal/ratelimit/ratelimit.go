// Package ratelimit guards the checkout endpoint with a fixed-window
// counter per client key. The counter lives behind a Store so a
// single-instance deployment can use the in-memory map and a
// multi-instance one can point every replica at redis.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store counts hits per key within the current window. The first hit of
// a window must reset the count to 1 and arm a new window deadline.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, error)
}

type Limiter struct {
	Store  Store
	Max    int
	Window time.Duration
}

// Allow reports whether this hit is within the per-key budget. A store
// failure fails open: blocking every checkout because the counter store
// is down is worse than briefly losing the limit.
func (l *Limiter) Allow(ctx context.Context, clientKey string) bool {
	n, err := l.Store.Incr(ctx, clientKey, l.Window)
	if err != nil {
		slog.Warn("rate limit store unavailable, failing open", "error", err)
		return true
	}
	return n <= l.Max
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is the single-process Store. Lossy under races was the
// old behavior; the mutex makes the boundary exact.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time // test hook
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*entry), now: time.Now}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		s.entries[key] = &entry{count: 1, resetAt: now.Add(window)}
		return 1, nil
	}
	e.count++
	return e.count, nil
}
