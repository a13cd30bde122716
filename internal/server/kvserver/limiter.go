package kvserver

import (
	"sync"

	"golang.org/x/time/rate"
)

// ipLimiter applies a per-IP token bucket to incoming connections.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func newIPLimiter(perSecond int) *ipLimiter {
	burst := perSecond
	if burst < 1 {
		burst = 1
	}
	return &ipLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(perSecond),
		burst:   burst,
	}
}

// allow reports whether a connection from ip may proceed.
func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	b, ok := l.buckets[ip]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[ip] = b
	}
	l.mu.Unlock()

	return b.Allow()
}
