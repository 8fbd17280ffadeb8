// Package throttle limits how often a single client IP may hit the public
// write endpoints (enquiries, chat).
package throttle

import (
	"net/http"
	"sync"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/network"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client IP.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
	log      *zap.Logger
}

// New allows perMinute requests per IP with the given burst.
// perMinute <= 0 disables throttling.
func New(perMinute, burst int, log *zap.Logger) *Limiter {
	if burst < 1 {
		burst = 1
	}
	l := rate.Inf
	if perMinute > 0 {
		l = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &Limiter{
		visitors: make(map[string]*visitor),
		limit:    l,
		burst:    burst,
		now:      time.Now,
		log:      log,
	}
}

// Allow reports whether a request from ip may proceed.
func (l *Limiter) Allow(ip string) bool {
	if l.limit == rate.Inf {
		return true
	}
	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	now := l.now()
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Prune forgets visitors idle for longer than maxIdle and returns how many
// were removed. Called periodically by the task runner.
func (l *Limiter) Prune(maxIdle time.Duration) int {
	cutoff := l.now().Add(-maxIdle)
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			n++
		}
	}
	return n
}

// Len returns the number of tracked visitors.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Middleware rejects requests over the limit with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := network.ClientIP(r)
		if !l.Allow(ip) {
			l.log.Info("request throttled",
				zap.String("ip", ip),
				zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "60")
			jsonutil.TooManyRequests(w, "Too many requests. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
