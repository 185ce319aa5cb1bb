package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the window counter and sets its expiry in one
// atomic round trip. It returns the post-increment count and the remaining
// TTL in milliseconds. INCR past the limit is harmless here: the key expires
// with the window regardless of how high the count climbs.
var fixedWindowScript = redis.NewScript(`
    local count = redis.call('INCR', KEYS[1])
    if count == 1 then
        redis.call('PEXPIRE', KEYS[1], ARGV[1])
    end
    local ttl = redis.call('PTTL', KEYS[1])
    if ttl < 0 then
        ttl = tonumber(ARGV[1])
        redis.call('PEXPIRE', KEYS[1], ttl)
    end
    return { count, ttl }
`)

// Redis is a fixed-window limiter backed by a shared Redis counter, for
// deployments running more than one process instance.
type Redis struct {
	rdb    *redis.Client
	prefix string
	limit  int
	period time.Duration
}

// NewRedis returns a Redis-backed limiter using the same window semantics
// as the in-memory one.
func NewRedis(rdb *redis.Client, prefix string, limit int, period time.Duration) *Redis {
	return &Redis{rdb: rdb, prefix: prefix, limit: limit, period: period}
}

// Check admits or rejects one request for key.
func (r *Redis) Check(ctx context.Context, key string) (Result, error) {
	vals, err := fixedWindowScript.Run(ctx, r.rdb, []string{r.prefix + ":" + key}, r.period.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, err
	}

	count, ttlMs := int(vals[0]), vals[1]
	resetAt := time.Now().Add(time.Duration(ttlMs) * time.Millisecond)
	if count > r.limit {
		return Result{Allowed: false, Limit: r.limit, Remaining: 0, ResetAt: resetAt}, nil
	}
	return Result{
		Allowed:   true,
		Limit:     r.limit,
		Remaining: r.limit - count,
		ResetAt:   resetAt,
	}, nil
}
