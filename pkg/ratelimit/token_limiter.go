package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a token-per-minute budget for LLM API calls.
// The window resets a minute after the first consumption in that window.
type TokenLimiter struct {
	mu        sync.Mutex
	limit     int
	used      int
	windowEnd time.Time
}

// NewTokenLimiter creates a limiter allowing at most limit tokens per minute.
func NewTokenLimiter(limit int) *TokenLimiter {
	return &TokenLimiter{limit: limit}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetIfExpired()
	return l.limit - l.used
}

// Wait blocks until n tokens can be consumed or the context is done.
func (l *TokenLimiter) Wait(ctx context.Context, n int) error {
	for {
		l.mu.Lock()
		l.resetIfExpired()
		if l.used+n <= l.limit || n > l.limit {
			// Requests larger than the whole budget are let through alone
			// rather than blocking forever.
			l.used += n
			if l.windowEnd.IsZero() {
				l.windowEnd = time.Now().Add(time.Minute)
			}
			l.mu.Unlock()
			return nil
		}
		waitUntil := l.windowEnd
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(waitUntil)):
		}
	}
}

func (l *TokenLimiter) resetIfExpired() {
	if !l.windowEnd.IsZero() && time.Now().After(l.windowEnd) {
		l.used = 0
		l.windowEnd = time.Time{}
	}
}
