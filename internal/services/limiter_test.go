package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewLoginLimiter(2, time.Minute)
	ip := "203.0.113.10"

	assert.True(t, limiter.Check(ip))
	limiter.Record(ip)
	assert.True(t, limiter.Check(ip))
	limiter.Record(ip)
	assert.False(t, limiter.Check(ip))
	assert.True(t, limiter.Check("203.0.113.11"))

	limiter.Reset(ip)
	assert.True(t, limiter.Check(ip))
}

func TestLoginLimiterWindowExpires(t *testing.T) {
	limiter := NewLoginLimiter(1, 100*time.Millisecond)
	ip := "203.0.113.20"

	limiter.Record(ip)
	assert.False(t, limiter.Check(ip))
	time.Sleep(150 * time.Millisecond)
	assert.True(t, limiter.Check(ip))
}

func TestLoginLimiterRunPrunes(t *testing.T) {
	limiter := NewLoginLimiter(0, 20*time.Millisecond)
	assert.Equal(t, 5, limiter.max)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go limiter.Run(ctx)

	limiter.Record("203.0.113.30")
	assert.Eventually(t, func() bool {
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		return len(limiter.attempts) == 0
	}, time.Second, 10*time.Millisecond)
}
