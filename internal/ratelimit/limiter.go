// Package ratelimit buckets registration requests per client key. The
// production default is the process-local fixed window in memory.go; the
// Redis implementation in redis.go provides a shared counter when the
// service runs as more than one instance.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of a single admit/reject decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds a rejected client should wait before
// retrying, never negative.
func (r Result) RetryAfter(now time.Time) int {
	secs := int(r.ResetAt.Sub(now).Seconds())
	if secs < 0 {
		secs = 0
	}
	return secs
}

// Limiter decides whether a request from the given client key is admitted
// in the current window. Implementations must apply increment-and-check
// atomically per key so concurrent requests cannot both be admitted at the
// limit boundary.
type Limiter interface {
	Check(ctx context.Context, key string) (Result, error)
}
