package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// rateLimiter is a per-instance sliding-window counter keyed by client IP.
// Entries whose window has lapsed are purged lazily on the next sweep.
type rateLimiter struct {
	limit   int
	window  time.Duration
	entries map[string]*rateEntry
	mu      sync.Mutex
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*rateEntry),
	}
	go rl.purgeLoop()
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	entry, exists := rl.entries[ip]
	if !exists {
		entry = &rateEntry{}
		rl.entries[ip] = entry
	}
	rl.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(rl.window)
	}
	entry.count++
	return entry.count <= rl.limit
}

func (rl *rateLimiter) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for ip, entry := range rl.entries {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(rl.entries, ip)
			}
			entry.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}

// RateLimiter returns a general-purpose sliding-window rate limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	rl := newRateLimiter(limit, window)
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperr.NewEnvelope("too many requests, try again shortly"))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	rl := newRateLimiter(20, time.Minute)
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperr.NewEnvelope("too many login attempts, try again in a minute"))
			return
		}
		c.Next()
	}
}
