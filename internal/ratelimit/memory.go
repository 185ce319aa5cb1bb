package ratelimit

import (
	"context"
	"sync"
	"time"
)

// window tracks one client key's count inside the current fixed window.
type window struct {
	count   int
	startAt time.Time
}

// Memory is a process-local fixed-window limiter. Expired windows are reset
// lazily on access; there is no background sweeper. Counts are scoped to one
// running process and forgotten on restart, an accepted limitation since
// sharing state across instances requires the Redis limiter instead.
type Memory struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

// NewMemory returns a limiter admitting at most limit requests per period
// for each client key.
func NewMemory(limit int, period time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Check admits or rejects one request for key. Rejections do not grow the
// stored count past the limit, so a flooding client cannot inflate state.
func (m *Memory) Check(_ context.Context, key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w := m.windows[key]
	if w == nil || now.Sub(w.startAt) >= m.period {
		w = &window{startAt: now}
		m.windows[key] = w
	}
	resetAt := w.startAt.Add(m.period)

	if w.count >= m.limit {
		return Result{Allowed: false, Limit: m.limit, Remaining: 0, ResetAt: resetAt}, nil
	}
	w.count++
	return Result{
		Allowed:   true,
		Limit:     m.limit,
		Remaining: m.limit - w.count,
		ResetAt:   resetAt,
	}, nil
}
