package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimit is a token bucket per client IP.
type RateLimit struct {
	PerMinute float64
	Burst     int
	// ExpiresIn drops buckets of clients that have been quiet this long.
	ExpiresIn time.Duration
}

// AuthRateLimit guards the credential-accepting routes: a burst of 10
// attempts, refilled at 10 per minute.
var AuthRateLimit = RateLimit{PerMinute: 10, Burst: 10, ExpiresIn: 5 * time.Minute}

// RateLimiter limits requests per client IP with AuthRateLimit. Every call
// returns a limiter with its own buckets, so route groups are counted apart.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithStore(NewIPLimiterStore(AuthRateLimit, time.Now))
}

// RateLimiterWithStore limits requests with the given store.
func RateLimiterWithStore(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})
}

// IPLimiterStore implements echo's RateLimiterStore with one token bucket
// per identifier and a clock that tests can drive.
type IPLimiterStore struct {
	mu          sync.Mutex
	limit       RateLimit
	now         func() time.Time
	visitors    map[string]*visitor
	lastCleanup time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPLimiterStore creates a store for limit reading time from now.
func NewIPLimiterStore(limit RateLimit, now func() time.Time) *IPLimiterStore {
	return &IPLimiterStore{
		limit:       limit,
		now:         now,
		visitors:    make(map[string]*visitor),
		lastCleanup: now(),
	}
}

// Allow takes one token from identifier's bucket.
func (s *IPLimiterStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, ok := s.visitors[identifier]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(s.limit.PerMinute/60), s.limit.Burst)}
		s.visitors[identifier] = v
	}
	v.lastSeen = now

	if s.limit.ExpiresIn > 0 && now.Sub(s.lastCleanup) > s.limit.ExpiresIn {
		for id, other := range s.visitors {
			if now.Sub(other.lastSeen) > s.limit.ExpiresIn {
				delete(s.visitors, id)
			}
		}
		s.lastCleanup = now
	}
	return v.limiter.AllowN(now, 1), nil
}

// Len reports how many clients currently have a bucket.
func (s *IPLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}
