package limiter

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count int
	start time.Time
}

// MemoryLimiter keeps one bucket per key in process memory.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewMemoryLimiter(limit int, window time.Duration) (*MemoryLimiter, error) {
	if err := checkParams(limit, window); err != nil {
		return nil, err
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}, nil
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) >= m.window {
		b = &bucket{start: now}
		m.buckets[key] = b
	}

	if b.count >= m.limit {
		return false, nil
	}

	b.count++
	return true, nil
}
