package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles actions per key
type Limiter interface {
	Allow(key string) bool
	Forget(key string)
}

// InMemoryLimiter keeps one token bucket per key
type InMemoryLimiter struct {
	keys map[string]*rate.Limiter
	mu   sync.Mutex
	r    rate.Limit
	b    int
}

// NewInMemoryLimiter allows requests per the given period with a burst of
// burst. NewInMemoryLimiter(6, time.Minute, 3) allows one analyze every ten
// seconds and three in a row.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	r := rate.Inf
	if requests > 0 && per > 0 {
		r = rate.Every(per / time.Duration(requests))
	}
	if burst < 1 {
		burst = 1
	}
	return &InMemoryLimiter{
		keys: make(map[string]*rate.Limiter),
		r:    r,
		b:    burst,
	}
}

// Allow reports whether key may act now
func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}

	return limiter.Allow()
}

// Forget drops the bucket of key
func (l *InMemoryLimiter) Forget(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.keys, key)
}
