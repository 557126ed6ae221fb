package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimitedEcho(store *IPLimiterStore) *echo.Echo {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}, RateLimiterWithStore(store))
	return e
}

func attempt(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterBurstAndRefill(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	e := newLimitedEcho(NewIPLimiterStore(AuthRateLimit, clock.Now))

	for i := 0; i < AuthRateLimit.Burst; i++ {
		require.Equal(t, http.StatusOK, attempt(e, "192.0.2.1").Code, "attempt %d is within the burst", i+1)
	}

	rec := attempt(e, "192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")

	assert.Equal(t, http.StatusOK, attempt(e, "192.0.2.2").Code, "other clients have their own bucket")

	// 10 per minute is one token every 6s.
	clock.Advance(5 * time.Second)
	assert.Equal(t, http.StatusTooManyRequests, attempt(e, "192.0.2.1").Code)

	clock.Advance(2 * time.Second)
	assert.Equal(t, http.StatusOK, attempt(e, "192.0.2.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, attempt(e, "192.0.2.1").Code)

	clock.Advance(time.Minute)
	for i := 0; i < AuthRateLimit.Burst; i++ {
		require.Equal(t, http.StatusOK, attempt(e, "192.0.2.1").Code, "a quiet minute refills the bucket")
	}
}

func TestIPLimiterStoreExpiresQuietClients(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewIPLimiterStore(AuthRateLimit, clock.Now)

	for _, ip := range []string{"192.0.2.1", "192.0.2.2", "192.0.2.3"} {
		allowed, err := store.Allow(ip)
		require.NoError(t, err)
		require.True(t, allowed)
	}
	assert.Equal(t, 3, store.Len())

	clock.Advance(AuthRateLimit.ExpiresIn + time.Second)
	_, err := store.Allow("192.0.2.9")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len(), "only the client seen after the quiet period keeps a bucket")
}

func TestRateLimiterInstancesAreIndependent(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.POST("/auth/login", ok, RateLimiter())
	e.POST("/auth/signup", ok, RateLimiter())

	post := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "198.51.100.7:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < AuthRateLimit.Burst; i++ {
		require.Equal(t, http.StatusOK, post("/auth/login"))
	}
	assert.Equal(t, http.StatusTooManyRequests, post("/auth/login"))
	assert.Equal(t, http.StatusOK, post("/auth/signup"))
}
