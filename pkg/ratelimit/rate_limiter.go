package ratelimit

import (
	"sync"
	"time"
)

// Config holds rate limiter configuration
type Config struct {
	Enabled        bool          `json:"enabled"`
	WindowDuration time.Duration `json:"window_duration"`
	Requests       int           `json:"requests"`
}

// Result represents a rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

type window struct {
	count int
	reset time.Time
}

// RateLimiter enforces a fixed-window per-client limit. The practice site
// keeps counters in process memory: one instance, one session, no shared
// state to externalize.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	config  *Config
}

func NewRateLimiter(config *Config) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		config:  config,
	}
}

// IsAllowed checks whether a request from clientIP fits the current window
func (r *RateLimiter) IsAllowed(clientIP string) *Result {
	limit := r.config.Requests

	if !r.config.Enabled {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: time.Now().Add(r.config.WindowDuration).Unix(),
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	w, ok := r.windows[clientIP]
	if !ok || now.After(w.reset) {
		w = &window{reset: now.Add(r.config.WindowDuration)}
		r.windows[clientIP] = w
	}

	w.count++
	remaining := limit - w.count
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   w.count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: w.reset.Unix(),
	}
}
