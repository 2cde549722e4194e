package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/shared"
)

// KeyedLimiter hands out one token bucket per key.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewKeyedLimiter(limit rate.Limit, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: map[string]*limiterEntry{},
		limit:    limit,
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

func (k *KeyedLimiter) Get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	k.evictIdle(now)
	entry, ok := k.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (k *KeyedLimiter) evictIdle(now time.Time) {
	for key, entry := range k.limiters {
		if now.Sub(entry.lastSeen) > k.idleTTL {
			delete(k.limiters, key)
		}
	}
}

// RateLimit allows perMinute requests per client address, refilled evenly
// over the minute.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		perMinute = 1
	}
	limiter := NewKeyedLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	retryAfter := strconv.Itoa(int((time.Minute / time.Duration(perMinute)).Seconds()) + 1)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Get(shared.ClientIP(r)).Allow() {
				w.Header().Set("Retry-After", retryAfter)
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
