package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/pkg/ratelimit"
	"github.com/akeren/creatorchain/pkg/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu      sync.Mutex
	values  map[string]string
	sets    int
	failGet bool
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return "", errors.New("cache down")
	}
	return c.values[key], nil
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = map[string]string{}
	}
	c.values[key] = value
	c.sets++
	return nil
}

func newFeedbackRouter(t *testing.T, cache Cache) *router.RouterService {
	return newLimitedFeedbackRouter(t, cache, nil)
}

func newLimitedFeedbackRouter(t *testing.T, cache Cache, limiter ratelimit.RateLimiter) *router.RouterService {
	t.Helper()
	logger := log.NewDiscardLogger()
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewFeedbackController(logger, cache, limiter))
	return rs
}

func get(rs *router.RouterService, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListCues(t *testing.T) {
	w := get(newFeedbackRouter(t, nil), "/v1/feedback")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []Cue `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 4)
	assert.Equal(t, Click, env.Data[0].Kind)
	assert.Equal(t, Success, env.Data[1].Kind)
}

func TestGetCue(t *testing.T) {
	rs := newFeedbackRouter(t, nil)

	w := get(rs, "/v1/feedback/success")
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data Cue `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, []int64{100, 50, 100}, env.Data.VibrationMS)

	assert.Equal(t, http.StatusNotFound, get(rs, "/v1/feedback/chime").Code)
}

func TestServeAudio_RendersAndCaches(t *testing.T) {
	cache := &mapCache{}
	rs := newFeedbackRouter(t, cache)

	first := get(rs, "/v1/feedback/error/audio")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "audio/wav", first.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF", first.Body.String()[:4])

	// Error is two bursts 50ms apart, 150ms in total.
	want := synth.WAVSize(synth.SamplesFor(150*time.Millisecond, synth.DefaultSampleRate))
	assert.Equal(t, strconv.Itoa(want), first.Header().Get("Content-Length"))
	assert.Equal(t, want, first.Body.Len())

	second := get(rs, "/v1/feedback/error/audio")
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Equal(t, 1, cache.sets)
}

func TestServeAudio_CacheFailureStillServes(t *testing.T) {
	rs := newFeedbackRouter(t, &mapCache{failGet: true})

	w := get(rs, "/v1/feedback/success/audio")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServeAudio_UnknownKind(t *testing.T) {
	w := get(newFeedbackRouter(t, nil), "/v1/feedback/chime/audio")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedbackController_RateLimitedAsAWhole(t *testing.T) {
	limiter := ratelimit.NewInMemoryRateLimiter(1, time.Hour)
	t.Cleanup(func() { _ = limiter.Close() })
	rs := newLimitedFeedbackRouter(t, nil, limiter)

	assert.Equal(t, http.StatusOK, get(rs, "/v1/feedback").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(rs, "/v1/feedback/error/audio").Code)
}
