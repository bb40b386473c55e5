package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	recoveryAttemptLimit  = 10
	recoveryAttemptWindow = 5 * time.Minute
)

// attemptLimiter throttles recovery endpoints per client. State is in-process
// only; a restart clears it, which is acceptable for abuse damping.
type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

// allow records an attempt under key and reports whether it is still within
// limit for the sliding window.
func (limiter *attemptLimiter) allow(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	if len(pruned) >= limit {
		return false
	}
	limiter.attempts[key] = append(pruned, now)
	return true
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}

	limiter.attempts[key] = pruned
	return pruned
}

func recoveryLimiterKey(c *fiber.Ctx) string {
	clientIP := strings.TrimSpace(c.IP())
	if clientIP == "" {
		clientIP = "unknown"
	}
	return clientIP + ":" + c.Path()
}
