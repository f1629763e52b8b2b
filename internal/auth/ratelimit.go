package auth

import (
	"sync"
	"time"
)

// Rate limiter defaults for sensitive auth operations (signup, signin,
// password reset).
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = time.Minute
	DefaultBaseDelay   = 2 * time.Second
	DefaultMaxDelay    = 32 * time.Second
)

// RateLimiter is a sliding-window attempt tracker keyed by caller-supplied
// strings, typically "operation:email". It never returns errors: callers
// translate a denial into a user-facing wait message.
//
// Attempts are recorded explicitly by the caller after a positive CanProceed,
// so a caller that checks but never performs the guarded operation does not
// consume an attempt. State is process-local and lost on restart.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time

	maxAttempts int
	window      time.Duration
	baseDelay   time.Duration
	maxDelay    time.Duration

	now func() time.Time
}

// RateLimiterConfig configures a RateLimiter. Zero values fall back to the
// package defaults.
type RateLimiterConfig struct {
	MaxAttempts int
	Window      time.Duration
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// NewRateLimiter creates a rate limiter. Zero or negative config fields fall
// back to the package defaults.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	return &RateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: cfg.MaxAttempts,
		window:      cfg.Window,
		baseDelay:   cfg.BaseDelay,
		maxDelay:    cfg.MaxDelay,
		now:         time.Now,
	}
}

// CanProceed reports whether another attempt for key is admissible. When
// denied, wait is how long until the earliest retained attempt leaves the
// window. Pruning updates internal state but no attempt is recorded.
func (rl *RateLimiter) CanProceed(key string) (allowed bool, wait time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	recent := rl.prune(key, now)

	if len(recent) >= rl.maxAttempts {
		oldest := recent[0]
		return false, rl.window - now.Sub(oldest)
	}
	return true, 0
}

// RecordAttempt appends the current timestamp to the key's attempt list.
// Callers must invoke this after CanProceed allows and the guarded operation
// is actually performed.
func (rl *RateLimiter) RecordAttempt(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.attempts[key] = append(rl.attempts[key], rl.now())
}

// DelayForAttempt returns the advisory exponential backoff for the key:
// base * 2^retained-attempts, capped at the configured maximum. The limiter
// does not enforce it; interactive callers use it to pace retries.
func (rl *RateLimiter) DelayForAttempt(key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	count := len(rl.prune(key, rl.now()))
	delay := rl.baseDelay
	for i := 0; i < count; i++ {
		delay *= 2
		if delay >= rl.maxDelay {
			return rl.maxDelay
		}
	}
	return delay
}

// Reset clears all recorded attempts for a key. Called when the guarded
// operation succeeds so a legitimate follow-up attempt is not penalized.
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, key)
}

// prune drops attempts older than the window. Caller must hold mu.
func (rl *RateLimiter) prune(key string, now time.Time) []time.Time {
	attempts := rl.attempts[key]
	recent := attempts[:0:0]
	for _, t := range attempts {
		if now.Sub(t) < rl.window {
			recent = append(recent, t)
		}
	}
	if len(recent) == 0 {
		delete(rl.attempts, key)
	} else {
		rl.attempts[key] = recent
	}
	return recent
}
