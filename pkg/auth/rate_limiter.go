package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPRateLimiter gives every client IP its own token bucket that refills
// limit tokens per minute. Buckets that have refilled completely are
// forgotten on the next sweep.
type IPRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*rate.Limiter
	limit     int
	every     rate.Limit
	lastSweep time.Time
	now       func() time.Time
}

const sweepInterval = 5 * time.Minute

// NewIPRateLimiter creates a limiter allowing requestsPerMinute per IP
func NewIPRateLimiter(requestsPerMinute int) *IPRateLimiter {
	return &IPRateLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   requestsPerMinute,
		every:   rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		now:     time.Now,
	}
}

// Limit is the configured requests per minute
func (l *IPRateLimiter) Limit() int {
	return l.limit
}

// Allow consumes one token from ip's bucket
func (l *IPRateLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	now := l.now()
	l.mu.Lock()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}
	b, ok := l.buckets[ip]
	if !ok {
		b = rate.NewLimiter(l.every, l.limit)
		l.buckets[ip] = b
	}
	l.mu.Unlock()

	return b.AllowN(now, 1), nil
}

// Reset forgets the bucket for ip
func (l *IPRateLimiter) Reset(ip string) {
	l.mu.Lock()
	delete(l.buckets, ip)
	l.mu.Unlock()
}

func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, b := range l.buckets {
		if b.TokensAt(now) >= float64(l.limit) {
			delete(l.buckets, ip)
		}
	}
	l.lastSweep = now
}
