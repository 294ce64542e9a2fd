package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultGenerationSafeLimit = 12
	DefaultGenerationHardLimit = 15
	DefaultGenerationWindow    = time.Minute
)

// GenerationLimiterConfig holds the sliding window settings for external model calls
type GenerationLimiterConfig struct {
	SafeLimit int           // calls per window after which cached content is preferred
	HardLimit int           // calls per window after which new calls wait
	Window    time.Duration // sliding window length
}

// GenerationLimiter tracks external model calls in a sliding window
//
// It is safe for concurrent use. The mutex is never held while waiting.
type GenerationLimiter struct {
	mu        sync.Mutex
	calls     []time.Time
	safeLimit int
	hardLimit int
	window    time.Duration
	maxPause  time.Duration
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *zap.Logger
}

// NewGenerationLimiter creates a new generation limiter
//
// Zero config values fall back to 12 and 15 calls per minute.
func NewGenerationLimiter(cfg GenerationLimiterConfig, logger *zap.Logger) *GenerationLimiter {
	if cfg.Window <= 0 {
		cfg.Window = DefaultGenerationWindow
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = DefaultGenerationHardLimit
	}
	if cfg.SafeLimit <= 0 || cfg.SafeLimit > cfg.HardLimit {
		cfg.SafeLimit = min(DefaultGenerationSafeLimit, cfg.HardLimit)
	}
	return &GenerationLimiter{
		safeLimit: cfg.SafeLimit,
		hardLimit: cfg.HardLimit,
		window:    cfg.Window,
		maxPause:  cfg.Window + time.Second,
		now:       time.Now,
		sleep:     sleepContext,
		logger:    logger,
	}
}

// Recent returns the number of calls inside the current window
func (l *GenerationLimiter) Recent() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.now())
	return len(l.calls)
}

// Acquire records a new external call, waiting first while the hard limit is reached
//
// The total wait is bounded by the window plus one second; once it elapses the call
// is recorded anyway. A cancelled context aborts the wait and nothing is recorded.
func (l *GenerationLimiter) Acquire(ctx context.Context) error {
	_, err := l.Reserve(ctx, false)
	return err
}

// Reserve decides between a new external call and the caller's fallback
//
// When "hasFallback" is true and the safe limit is reached, nothing is recorded and
// "useFallback" is true. Otherwise the call is recorded as in Acquire. The limit check
// and the record happen under the same lock, so concurrent callers never overshoot
// the safe limit while a fallback is available.
func (l *GenerationLimiter) Reserve(ctx context.Context, hasFallback bool) (bool, error) {
	deadline := l.now().Add(l.maxPause)
	for {
		l.mu.Lock()
		now := l.now()
		l.prune(now)
		if hasFallback && len(l.calls) >= l.safeLimit {
			l.mu.Unlock()
			return true, nil
		}
		if len(l.calls) < l.hardLimit || !now.Before(deadline) {
			l.calls = append(l.calls, now)
			l.mu.Unlock()
			return false, nil
		}
		wait := l.calls[0].Add(l.window).Sub(now)
		if remaining := deadline.Sub(now); wait > remaining {
			wait = remaining
		}
		recent := len(l.calls)
		l.mu.Unlock()

		l.logger.Warn("generation hard limit reached, waiting",
			zap.Int("recent_calls", recent),
			zap.Duration("wait", wait),
		)
		if err := l.sleep(ctx, wait); err != nil {
			return false, err
		}
	}
}

// prune drops timestamps older than the window; callers must hold mu
func (l *GenerationLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.calls) && !l.calls[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.calls = append(l.calls[:0], l.calls[i:]...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
