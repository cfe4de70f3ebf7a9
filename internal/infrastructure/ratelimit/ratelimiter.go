// Package ratelimit throttles abuse-prone endpoints, chiefly code
// redemption, where unthrottled guessing would let callers enumerate
// valid codes.
package ratelimit

import "time"

type Limits struct {
	PerMinute int
	PerHour   int
}

type RateLimiter interface {
	// Allow records one attempt for the key and reports whether it fits
	// inside every configured window.
	Allow(key string, limits Limits) (bool, error)
	// Remaining returns how many attempts the key has used inside the window.
	Remaining(key string, window time.Duration) (int64, error)
	// Reset clears all windows for the key.
	Reset(key string) error
}
