package middleware

import (
	"net/http"
	"sync"
	"time"

	"gestinv/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const loginLimitPerMinute = 20

// ── Login rate limiter ────────────────────────────────────────────────────────

// LoginRateLimiter limits login attempts to 20 per minute per IP. With Redis
// available the counter is shared across instances; without it (or if Redis
// errors) it falls back to the local in-memory counter.
func LoginRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if rdb != nil {
			key := "ratelimit:login:" + ip
			n, err := rdb.Incr(c.Request.Context(), key).Result()
			if err == nil {
				if n == 1 {
					rdb.Expire(c.Request.Context(), key, time.Minute)
				}
				if n > loginLimitPerMinute {
					c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
					return
				}
				c.Next()
				return
			}
			log.Warn().Err(err).Msg("redis rate limiter unavailable, falling back to in-memory")
		}

		if !allowLocal(ip, loginLimitPerMinute, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// ── General API rate limiter ──────────────────────────────────────────────────

// RateLimiter returns a general-purpose rate limiter allowing limit
// requests per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowLocal("api:"+c.ClientIP(), limit, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// ── In-memory fallback ────────────────────────────────────────────────────────

// rateEntry tracks request counts per key within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	rateMap   = make(map[string]*rateEntry)
	rateMapMu sync.Mutex
)

func allowLocal(key string, limit int, window time.Duration) bool {
	rateMapMu.Lock()
	entry, exists := rateMap[key]
	if !exists {
		entry = &rateEntry{}
		rateMap[key] = entry
	}
	rateMapMu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(window)
	}
	entry.count++
	return entry.count <= limit
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically removes expired entries from the fallback map to prevent
// memory leaks from accumulating IPs that never return.

const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		rateMapMu.Lock()
		purged := 0
		for key, entry := range rateMap {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(rateMap, key)
				purged++
			}
			entry.mu.Unlock()
		}
		remaining := len(rateMap)
		rateMapMu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("entries_purged", purged).
				Int("entries_remaining", remaining).
				Msg("rate limiter map purged")
		}
	}
}
