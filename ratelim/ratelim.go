package ratelim

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

const cleanupAfter = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter tracks a token bucket per client IP. Used to slow down
// credential guessing on the login and register endpoints.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows 5 requests per minute with a burst of 5.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(12 * time.Second),
		burst:    5,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, exists := rl.visitors[ip]; exists {
		v.lastSeen = time.Now()
		return v.limiter
	}

	v := &visitor{
		limiter:  rate.NewLimiter(rl.limit, rl.burst),
		lastSeen: time.Now(),
	}
	rl.visitors[ip] = v

	go rl.janitor(ip)

	return v.limiter
}

// janitor drops the IP once it has been idle for the full cleanup
// window. A visitor that keeps sending requests keeps its bucket, so
// throttling is never reset mid-burst.
func (rl *RateLimiter) janitor(ip string) {
	for {
		time.Sleep(cleanupAfter)
		if rl.evictIfIdle(ip, cleanupAfter) {
			return
		}
	}
}

// evictIfIdle removes the IP's bucket when its last request is at
// least idle old. Reports whether the janitor can stop.
func (rl *RateLimiter) evictIfIdle(ip string, idle time.Duration) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		return true
	}
	if time.Since(v.lastSeen) < idle {
		return false
	}
	delete(rl.visitors, ip)
	return true
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.getLimiter(ip).Allow()
}

// Limit enforces the per-IP budget ahead of the wrapped handler.
func (rl *RateLimiter) Limit(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.Allow(ip) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r, ps)
	}
}
