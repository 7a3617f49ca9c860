package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiterAllowsWithinBurst(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Other keys have their own budget.
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestIPRateLimiterExpiresIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 1, 50*time.Millisecond).(*ipRateLimiter)

	current := time.Now()
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// A request from another key past the ttl sweeps the idle entry,
	// so the first key starts over with a fresh budget.
	current = current.Add(time.Second)
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.True(t, limiter.Allow("10.0.0.1"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/login", RateLimit(NewIPRateLimiter(1, time.Hour, 2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, do())
	require.Equal(t, http.StatusOK, do())
	require.Equal(t, http.StatusTooManyRequests, do())
}
