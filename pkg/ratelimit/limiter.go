// Package ratelimit caps the read bandwidth shared by both hashing tasks.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// minBucket keeps one full hashing chunk readable without waiting
const minBucket = 64 * 1024

// Limiter is a token bucket shared by every reader it wraps
type Limiter struct {
	bytesPerSecond int64
	bucketSize     int64

	mu         sync.Mutex
	tokens     int64
	lastRefill time.Time
	now        func() time.Time
}

// NewLimiter returns a limiter for bytesPerSecond, or nil (no limiting) when it is not positive
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	bucket := bytesPerSecond
	if bucket < minBucket {
		bucket = minBucket
	}

	l := &Limiter{
		bytesPerSecond: bytesPerSecond,
		bucketSize:     bucket,
		tokens:         bucket,
		now:            time.Now,
	}
	l.lastRefill = l.now()
	return l
}

// BytesPerSecond returns the configured rate
func (l *Limiter) BytesPerSecond() int64 {
	return l.bytesPerSecond
}

// Wait blocks until n bytes may be read or ctx is done. Requests larger
// than the bucket are capped to the bucket size.
func (l *Limiter) Wait(ctx context.Context, n int64) error {
	if n > l.bucketSize {
		n = l.bucketSize
	}

	for {
		delay := l.reserve(n)
		if delay == 0 {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve takes n tokens if available, otherwise returns how long to wait
func (l *Limiter) reserve(n int64) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens >= n {
		l.tokens -= n
		return 0
	}

	deficit := n - l.tokens
	delay := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
	if delay < time.Millisecond {
		delay = time.Millisecond
	}
	return delay
}

// refund returns tokens reserved for a read that came up short. Caller holds no lock.
func (l *Limiter) refund(n int64) {
	if n <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tokens += n
	if l.tokens > l.bucketSize {
		l.tokens = l.bucketSize
	}
}

// refill must be called with mu held
func (l *Limiter) refill() {
	now := l.now()
	elapsed := now.Sub(l.lastRefill)

	add := int64(float64(elapsed) / float64(time.Second) * float64(l.bytesPerSecond))
	if add > 0 {
		l.tokens += add
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastRefill = now
	}
}
