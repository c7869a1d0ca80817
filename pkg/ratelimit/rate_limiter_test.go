package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisabledLimiterAlwaysAllows(t *testing.T) {
	limiter := NewRateLimiter(&Config{
		Enabled:        false,
		WindowDuration: time.Minute,
		Requests:       1,
	})

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.IsAllowed("10.0.0.1").Allowed)
	}
}

func TestLimiterBlocksAfterWindowBudget(t *testing.T) {
	limiter := NewRateLimiter(&Config{
		Enabled:        true,
		WindowDuration: time.Minute,
		Requests:       3,
	})

	for i := 0; i < 3; i++ {
		result := limiter.IsAllowed("10.0.0.1")
		assert.True(t, result.Allowed)
		assert.Equal(t, 3-(i+1), result.Remaining)
	}

	result := limiter.IsAllowed("10.0.0.1")
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestLimiterTracksClientsSeparately(t *testing.T) {
	limiter := NewRateLimiter(&Config{
		Enabled:        true,
		WindowDuration: time.Minute,
		Requests:       1,
	})

	assert.True(t, limiter.IsAllowed("10.0.0.1").Allowed)
	assert.False(t, limiter.IsAllowed("10.0.0.1").Allowed)
	assert.True(t, limiter.IsAllowed("10.0.0.2").Allowed)
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter(&Config{
		Enabled:        true,
		WindowDuration: 10 * time.Millisecond,
		Requests:       1,
	})

	assert.True(t, limiter.IsAllowed("10.0.0.1").Allowed)
	assert.False(t, limiter.IsAllowed("10.0.0.1").Allowed)

	time.Sleep(15 * time.Millisecond)
	assert.True(t, limiter.IsAllowed("10.0.0.1").Allowed)
}
