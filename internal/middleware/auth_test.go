package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintechs/portal/internal/domain"
	"github.com/vintechs/portal/internal/logging"
	"github.com/vintechs/portal/internal/testutils"
	"github.com/vintechs/portal/internal/view"
)

const validToken = "valid-token"

// stubVerifier accepts exactly validToken.
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	if token != validToken {
		return nil, domain.ErrInvalidToken
	}
	return testutils.UserIdentity(""), nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(view.NewSessionStore("a-very-secret-key-for-testing-!", 3600)))

	e.GET("/dashboard", func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return c.String(http.StatusInternalServerError, "no identity")
		}
		return c.String(http.StatusOK, "Welcome "+identity.Email)
	}, Auth(stubVerifier{}))
	e.GET("/auth/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "Login Page")
	}, GuestOnly(stubVerifier{}))
	e.GET("/seed-email", func(c echo.Context) error {
		view.SetSessionEmail(c, "john@example.com")
		return c.NoContent(http.StatusOK)
	})
	e.GET("/return-path", func(c echo.Context) error {
		return c.String(http.StatusOK, view.PopReturnPath(c, "none"))
	})
	return e
}

func withCookies(req *http.Request, cookies ...*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestAuthMiddleware(t *testing.T) {
	e := newTestEcho()

	t.Run("unauthenticated user is redirected to login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard?tab=sites", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get(echo.HeaderLocation))

		// The requested page is remembered for after sign-in.
		follow := withCookies(httptest.NewRequest(http.MethodGet, "/return-path", nil), rec.Result().Cookies()...)
		rec2 := httptest.NewRecorder()
		e.ServeHTTP(rec2, follow)
		assert.Equal(t, "/dashboard?tab=sites", rec2.Body.String())
	})

	t.Run("invalid token is cleared", func(t *testing.T) {
		req := withCookies(httptest.NewRequest(http.MethodGet, "/dashboard", nil), &http.Cookie{Name: AuthCookieName, Value: "forged"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		var cleared bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == AuthCookieName && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared, "the rejected cookie is expired")
	})

	t.Run("htmx request gets HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get("HX-Redirect"))
	})

	t.Run("valid token passes with email from session", func(t *testing.T) {
		seed := httptest.NewRecorder()
		e.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/seed-email", nil))

		cookies := append(seed.Result().Cookies(), &http.Cookie{Name: AuthCookieName, Value: validToken})
		req := withCookies(httptest.NewRequest(http.MethodGet, "/dashboard", nil), cookies...)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Welcome john@example.com", rec.Body.String())
	})
}

func TestGuestOnly(t *testing.T) {
	e := newTestEcho()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := withCookies(httptest.NewRequest(http.MethodGet, "/auth/login", nil), &http.Cookie{Name: AuthCookieName, Value: validToken})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestSetAuthCookie(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), rec)

	SetAuthCookie(c, "tok", time.Hour)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, AuthCookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(Logger)
	e.GET("/ping", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside handler")
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping?password=hunter2", nil))

	reqID := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, reqID)
	out := buf.String()
	assert.Contains(t, out, `"msg":"inside handler"`)
	assert.Contains(t, out, `"request_id":"`+reqID+`"`)
	assert.Contains(t, out, `"path":"/ping"`)
	assert.Contains(t, out, `"status":200`)
	assert.NotContains(t, out, "hunter2")
}
