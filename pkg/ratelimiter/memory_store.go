package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/qrkit/pkg/cache"
)

type state struct {
	tokens     int
	lastRefill time.Time
}

// MemoryStore keeps buckets in an LRU, so the least recently seen client is
// forgotten once maxKeys is reached. A forgotten client starts over with a
// full bucket.
type MemoryStore struct {
	mu      sync.Mutex
	buckets *cache.LRU[string, *state]
}

// NewMemoryStore panics if maxKeys is not positive.
func NewMemoryStore(maxKeys int) *MemoryStore {
	return &MemoryStore{buckets: cache.NewLRU[string, *state](maxKeys)}
}

func (m *MemoryStore) Take(ctx context.Context, key string, n int, now time.Time, cfg Config) (int, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return 0, time.Time{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, _ := m.buckets.GetOrCreate(key, func() *state {
		return &state{tokens: cfg.Capacity, lastRefill: now}
	})

	// cap the interval count so a long idle period cannot overflow
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(s.lastRefill)/cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		s.tokens = min(s.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		s.lastRefill = s.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
		if s.tokens == cfg.Capacity {
			s.lastRefill = now
		}
	}

	// denied requests do not drain the bucket below zero
	if s.tokens < n {
		return s.tokens - n, s.lastRefill.Add(cfg.RefillInterval), nil
	}
	s.tokens -= n
	return s.tokens, s.lastRefill.Add(cfg.RefillInterval), nil
}

func (m *MemoryStore) Reset(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets.Remove(key)
	return nil
}
