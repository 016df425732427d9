package network

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultLimiterIdle = 10 * time.Minute

// hostLimiter keeps one token bucket per remote host. Buckets unused for
// longer than idle are evicted by a sweep that runs at most once per idle
// period. A nil *hostLimiter allows everything.
type hostLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration

	mu        sync.Mutex
	buckets   map[string]*hostBucket
	nextSweep time.Time
}

type hostBucket struct {
	*rate.Limiter
	seen time.Time
}

func newHostLimiter(perSecond float64, burst int, idle time.Duration) *hostLimiter {
	if perSecond <= 0 || burst <= 0 {
		return nil
	}
	if idle <= 0 {
		idle = defaultLimiterIdle
	}
	return &hostLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idle:    idle,
		buckets: make(map[string]*hostBucket),
	}
}

// allow spends one token from host's bucket at now.
func (l *hostLimiter) allow(host string, now time.Time) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Before(l.nextSweep) {
		l.evictIdle(now)
	}
	b, ok := l.buckets[host]
	if !ok {
		b = &hostBucket{Limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[host] = b
	}
	b.seen = now
	return b.AllowN(now, 1)
}

func (l *hostLimiter) evictIdle(now time.Time) {
	for host, b := range l.buckets {
		if now.Sub(b.seen) >= l.idle {
			delete(l.buckets, host)
		}
	}
	l.nextSweep = now.Add(l.idle)
}

func (l *hostLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
