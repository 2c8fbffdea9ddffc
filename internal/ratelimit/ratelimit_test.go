package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AlchemyApps/mindScript-sub004/internal/ratelimit"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestLimiter_Allow(t *testing.T) {
	t.Run("allows up to the limit within a window", func(t *testing.T) {
		clock := &testClock{now: time.Now()}
		limiter := ratelimit.NewWithClock(3, time.Minute, clock.Now)

		require.True(t, limiter.Allow("user-1"))
		require.True(t, limiter.Allow("user-1"))
		require.True(t, limiter.Allow("user-1"))
		require.False(t, limiter.Allow("user-1"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		clock := &testClock{now: time.Now()}
		limiter := ratelimit.NewWithClock(1, time.Minute, clock.Now)

		require.True(t, limiter.Allow("user-1"))
		require.False(t, limiter.Allow("user-1"))
		require.True(t, limiter.Allow("user-2"))
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		clock := &testClock{now: time.Now()}
		limiter := ratelimit.NewWithClock(1, time.Minute, clock.Now)

		require.True(t, limiter.Allow("user-1"))
		require.False(t, limiter.Allow("user-1"))

		clock.Advance(time.Minute)
		require.True(t, limiter.Allow("user-1"))
	})

	t.Run("partial window elapse does not reset", func(t *testing.T) {
		clock := &testClock{now: time.Now()}
		limiter := ratelimit.NewWithClock(1, time.Minute, clock.Now)

		require.True(t, limiter.Allow("user-1"))
		clock.Advance(59 * time.Second)
		require.False(t, limiter.Allow("user-1"))
	})
}

func TestLimiter_Sweep(t *testing.T) {
	clock := &testClock{now: time.Now()}
	limiter := ratelimit.NewWithClock(5, time.Minute, clock.Now)

	require.True(t, limiter.Allow("user-1"))
	require.True(t, limiter.Allow("user-2"))

	clock.Advance(2 * time.Minute)
	limiter.Sweep()

	// Swept keys start a fresh window.
	require.True(t, limiter.Allow("user-1"))
}
