package ratelimit

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRateLimiter_IsLimited_IsPerKey(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Second)

	limited, err := limiter.IsLimited("client-a")
	require.NoError(t, err)
	assert.False(t, limited, "first request for client-a should not be limited")

	limited, err = limiter.IsLimited("client-a")
	require.NoError(t, err)
	assert.True(t, limited, "second immediate request for client-a should be limited")

	limited, err = limiter.IsLimited("client-b")
	require.NoError(t, err)
	assert.False(t, limited, "client-b has its own bucket")
}

func TestInMemoryRateLimiter_EmptyKeyIsBucketed(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Minute)

	limited, _ := limiter.IsLimited("")
	assert.False(t, limited)
	limited, _ = limiter.IsLimited("")
	assert.True(t, limited)
}

func TestNewRateLimiter_PicksStrategy(t *testing.T) {
	db, _ := redismock.NewClientMock()

	assert.IsType(t, &InMemoryRateLimiter{}, NewRateLimiter(&RateLimitConfig{Requests: 1, Window: time.Second}))
	assert.IsType(t, &RedisRateLimiter{}, NewRateLimiter(&RateLimitConfig{Requests: 1, Window: time.Second, Redis: db}))
}
