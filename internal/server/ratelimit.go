package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig holds rate limiting configuration for the compute endpoints.
type RateLimitConfig struct {
	MaxRequests int           // Maximum requests per window (default: 60)
	Window      time.Duration // Time window for rate limiting (default: 1 minute)
}

// DefaultRateLimitConfig returns the default rate limiting configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 60,
		Window:      time.Minute,
	}
}

// rateLimiter implements a sliding window rate limiter keyed by client IP.
type rateLimiter struct {
	mu     sync.Mutex
	config RateLimitConfig

	// requests tracks timestamps of requests per IP
	requests map[string][]time.Time
}

// newRateLimiter creates a new rate limiter with the given configuration.
func newRateLimiter(config RateLimitConfig) *rateLimiter {
	def := DefaultRateLimitConfig()
	if config.MaxRequests <= 0 {
		config.MaxRequests = def.MaxRequests
	}
	if config.Window <= 0 {
		config.Window = def.Window
	}

	return &rateLimiter{
		config:   config,
		requests: make(map[string][]time.Time),
	}
}

// checkResult represents the result of a rate limit check.
type checkResult struct {
	Allowed    bool
	RetryAfter time.Duration // How long until the client can retry
	Remaining  int           // Requests left in the current window
}

// check reports whether the IP may make a request and records it if so.
func (rl *rateLimiter) check(ip string) checkResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	// Clean up old requests outside the window
	windowStart := now.Add(-rl.config.Window)
	if timestamps, exists := rl.requests[ip]; exists {
		validTimestamps := make([]time.Time, 0, len(timestamps))
		for _, ts := range timestamps {
			if ts.After(windowStart) {
				validTimestamps = append(validTimestamps, ts)
			}
		}
		rl.requests[ip] = validTimestamps
	}

	// Check rate limit
	current := len(rl.requests[ip])
	if current >= rl.config.MaxRequests {
		// Find when the oldest request in the window will expire
		oldest := rl.requests[ip][0]
		retryAfter := oldest.Add(rl.config.Window).Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second // Minimum retry time
		}
		return checkResult{
			Allowed:    false,
			RetryAfter: retryAfter,
		}
	}

	// Record this request
	rl.requests[ip] = append(rl.requests[ip], now)

	return checkResult{
		Allowed:   true,
		Remaining: rl.config.MaxRequests - current - 1,
	}
}

// cleanup removes IPs whose requests have all aged out of the window.
// Should be called periodically.
func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.config.Window)

	for ip, timestamps := range rl.requests {
		validTimestamps := make([]time.Time, 0, len(timestamps))
		for _, ts := range timestamps {
			if ts.After(windowStart) {
				validTimestamps = append(validTimestamps, ts)
			}
		}
		if len(validTimestamps) == 0 {
			delete(rl.requests, ip)
		} else {
			rl.requests[ip] = validTimestamps
		}
	}
}

// run periodically removes stale entries until ctx is cancelled.
func (rl *rateLimiter) run(ctx context.Context) {
	ticker := time.NewTicker(rl.config.Window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// extractIP extracts the client IP from the request.
// It checks X-Forwarded-For and X-Real-IP headers first (for reverse proxy
// scenarios), then falls back to the remote address.
func extractIP(r *http.Request) string {
	// X-Forwarded-For can be "client, proxy1, proxy2"; take the first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to remote address
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}
