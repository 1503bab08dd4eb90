package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
)

const (
	maxBuckets = 4096
	bucketIdle = time.Minute
)

type tokenBucket struct {
	tokens int
	last   time.Time
}

// limiter keeps one token bucket per client address.
type limiter struct {
	mu      sync.Mutex
	rate    int
	burst   int
	now     func() time.Time
	buckets map[string]*tokenBucket
}

func newLimiter(rps int, now func() time.Time) *limiter {
	return &limiter{rate: rps, burst: rps, now: now, buckets: map[string]*tokenBucket{}}
}

func (l *limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	tb, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxBuckets {
			l.sweep(now)
		}
		tb = &tokenBucket{tokens: l.burst, last: now}
		l.buckets[key] = tb
	}
	elapsed := now.Sub(tb.last).Seconds()
	if elapsed > 0 {
		refill := int(elapsed * float64(l.rate))
		if refill > 0 {
			tb.tokens += refill
			if tb.tokens > l.burst {
				tb.tokens = l.burst
			}
			tb.last = now
		}
	}
	if tb.tokens <= 0 {
		return false
	}
	tb.tokens--
	return true
}

// sweep drops buckets that have been idle long enough to be full again.
func (l *limiter) sweep(now time.Time) {
	for k, tb := range l.buckets {
		if now.Sub(tb.last) > bucketIdle {
			delete(l.buckets, k)
		}
	}
}

func RateLimit(rps int) func(http.Handler) http.Handler {
	return rateLimit(rps, time.Now)
}

func rateLimit(rps int, now func() time.Time) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := newLimiter(rps, now)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientKey(r)) {
				httpx.WriteError(w, http.StatusTooManyRequests, httpx.CodeRateLimited, "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
