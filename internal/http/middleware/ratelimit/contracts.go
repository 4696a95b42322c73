// Package ratelimit throttles API clients with a token bucket per client key.
package ratelimit

// Limiter decides whether the client behind key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// NopLimiter lets every request through.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(string) bool { return true }
