package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig controls the registration endpoint's per-client window.
type RateLimitConfig struct {
	Max    int           // admitted requests per window per client key
	Window time.Duration // window length
	Prefix string        // key prefix when a shared Redis counter is used
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables with clamped defaults:
// 10 admitted requests per 60-second window.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Max:    envIntDefault("RATE_LIMIT_MAX", 10),
		Window: envDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix: envStr("RATE_LIMIT_PREFIX", "rl:register"),
	}
	if cfg.Max < 1 {
		cfg.Max = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envIntDefault(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
