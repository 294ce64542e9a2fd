package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewGenerationLimiter(t *testing.T) {
	tests := []struct {
		name         string
		cfg          GenerationLimiterConfig
		expectedSafe int
		expectedHard int
		expectedWin  time.Duration
	}{
		{
			name:         "defaults",
			cfg:          GenerationLimiterConfig{},
			expectedSafe: 12,
			expectedHard: 15,
			expectedWin:  time.Minute,
		},
		{
			name:         "custom",
			cfg:          GenerationLimiterConfig{SafeLimit: 2, HardLimit: 4, Window: 10 * time.Second},
			expectedSafe: 2,
			expectedHard: 4,
			expectedWin:  10 * time.Second,
		},
		{
			name:         "safe above hard is clamped",
			cfg:          GenerationLimiterConfig{SafeLimit: 20, HardLimit: 5},
			expectedSafe: 5,
			expectedHard: 5,
			expectedWin:  time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewGenerationLimiter(tt.cfg, zap.NewNop())
			assert.Equal(t, tt.expectedSafe, limiter.safeLimit)
			assert.Equal(t, tt.expectedHard, limiter.hardLimit)
			assert.Equal(t, tt.expectedWin, limiter.window)
			assert.Equal(t, tt.expectedWin+time.Second, limiter.maxPause)
		})
	}
}

func TestGenerationLimiter_Recent(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	fillLimiter(limiter, 11)
	assert.Equal(t, 11, limiter.Recent())

	clock.Advance(30 * time.Second)
	fillLimiter(limiter, 1)
	assert.Equal(t, 12, limiter.Recent())

	clock.Advance(30*time.Second + time.Millisecond)
	assert.Equal(t, 1, limiter.Recent())

	clock.Advance(time.Minute)
	assert.Equal(t, 0, limiter.Recent())
}

func TestGenerationLimiter_Acquire(t *testing.T) {
	t.Run("under hard limit does not wait", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newTestLimiter(clock)

		fillLimiter(limiter, 15)

		assert.Empty(t, clock.Slept())
		assert.Equal(t, 15, limiter.Recent())
	})

	t.Run("hard limit waits for the oldest call to expire", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newTestLimiter(clock)

		fillLimiter(limiter, 5)
		clock.Advance(20 * time.Second)
		fillLimiter(limiter, 10)

		err := limiter.Acquire(context.Background())

		require.NoError(t, err)
		require.Len(t, clock.Slept(), 1)
		assert.Equal(t, 40*time.Second, clock.Slept()[0])
		// the five oldest calls expired, the new one is recorded
		assert.Equal(t, 11, limiter.Recent())
	})

	t.Run("wait never exceeds the window plus one second", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newTestLimiter(clock)
		fillLimiter(limiter, 15)

		start := clock.Now()
		require.NoError(t, limiter.Acquire(context.Background()))

		var total time.Duration
		for _, d := range clock.Slept() {
			total += d
		}
		assert.LessOrEqual(t, total, 61*time.Second)
		assert.LessOrEqual(t, clock.Now().Sub(start), 61*time.Second)
	})

	t.Run("records the call once the pause budget is spent", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newTestLimiter(clock)
		fillLimiter(limiter, 15)
		// a window longer than the pause budget keeps every call alive
		limiter.sleep = func(ctx context.Context, d time.Duration) error {
			clock.Advance(limiter.maxPause)
			return nil
		}
		limiter.window = 10 * time.Minute

		require.NoError(t, limiter.Acquire(context.Background()))
		assert.Equal(t, 16, limiter.Recent())
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newTestLimiter(clock)
		fillLimiter(limiter, 15)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := limiter.Acquire(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 15, limiter.Recent())
	})

	t.Run("concurrent callers are all recorded", func(t *testing.T) {
		clock := newFakeClock()
		limiter := newTestLimiter(clock)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, limiter.Acquire(context.Background()))
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, limiter.Recent())
	})
}

func TestGenerationLimiter_SafeThenHardSequence(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	for i := 1; i <= 16; i++ {
		nearBefore := limiter.Recent() >= limiter.safeLimit
		require.NoError(t, limiter.Acquire(context.Background()))

		switch {
		case i <= 12:
			assert.False(t, nearBefore, "call %d", i)
		default:
			assert.True(t, nearBefore, "call %d", i)
		}
		if i <= 15 {
			assert.Empty(t, clock.Slept(), "call %d", i)
		}
	}
	assert.Len(t, clock.Slept(), 1)
}

func TestGenerationLimiter_Reserve(t *testing.T) {
	tests := []struct {
		name                string
		priorCalls          int
		hasFallback         bool
		expectedUseFallback bool
		expectedRecent      int
	}{
		{
			name:           "below safe limit with fallback is recorded",
			priorCalls:     11,
			hasFallback:    true,
			expectedRecent: 12,
		},
		{
			name:                "safe limit with fallback is not recorded",
			priorCalls:          12,
			hasFallback:         true,
			expectedUseFallback: true,
			expectedRecent:      12,
		},
		{
			name:           "safe limit without fallback is recorded",
			priorCalls:     12,
			hasFallback:    false,
			expectedRecent: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			limiter := newTestLimiter(clock)
			fillLimiter(limiter, tt.priorCalls)

			useFallback, err := limiter.Reserve(context.Background(), tt.hasFallback)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedUseFallback, useFallback)
			assert.Equal(t, tt.expectedRecent, limiter.Recent())
			assert.Empty(t, clock.Slept())
		})
	}
}

func TestGenerationLimiter_ReserveConcurrentWithFallback(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)
	fillLimiter(limiter, 11)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		recorded int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			useFallback, err := limiter.Reserve(context.Background(), true)
			assert.NoError(t, err)
			if !useFallback {
				mu.Lock()
				recorded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, recorded)
	assert.Equal(t, 12, limiter.Recent())
}
