// Package ratelimit throttles requests per client with token buckets.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// Limiter keeps one token bucket per client key.
type Limiter struct {
	clients      map[string]*client
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
	now          func() time.Time
}

// New creates a limiter allowing requestsPerSecond with the given burst per
// client. A non-positive burst defaults to 5; a non-positive rate disables limiting.
func New(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	r := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		r = rate.Inf
	}
	return &Limiter{
		clients:      make(map[string]*client),
		defaultRate:  r,
		defaultBurst: burst,
		now:          time.Now,
	}
}

// Allow reports whether a request from key may proceed now.
func (l *Limiter) Allow(key string) bool {
	c := l.getClient(key)
	now := l.now()
	c.lastSeen.Store(now.UnixNano())
	return c.limiter.AllowN(now, 1)
}

func (l *Limiter) getClient(key string) *client {
	l.mu.RLock()
	c, exists := l.clients[key]
	l.mu.RUnlock()

	if exists {
		return c
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if c, exists := l.clients[key]; exists {
		return c
	}

	c = &client{limiter: rate.NewLimiter(l.defaultRate, l.defaultBurst)}
	c.lastSeen.Store(l.now().UnixNano())
	l.clients[key] = c
	return c
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// Cleanup drops clients not seen for longer than idle and returns how many
// were removed. A dropped client starts again with a full bucket.
func (l *Limiter) Cleanup(idle time.Duration) int {
	cutoff := l.now().Add(-idle).UnixNano()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, c := range l.clients {
		if c.lastSeen.Load() < cutoff {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup(idle)
		}
	}
}

// Middleware rejects requests over the limit with reject, or a bare 429
// when reject is nil. Clients are keyed by remote IP, so it should run after
// a real-IP middleware.
func (l *Limiter) Middleware(reject http.HandlerFunc) func(http.Handler) http.Handler {
	if reject == nil {
		reject = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(ClientKey(r)) {
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey returns the host part of the request's remote address.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
