package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/domain"
	"github.com/vintechs/portal/internal/logging"
	"github.com/vintechs/portal/internal/view"
)

const (
	// UserContextKey holds the *domain.Identity of the signed-in visitor.
	UserContextKey = "user"
	// AuthCookieName is the cookie carrying the session token.
	AuthCookieName = "auth_token"

	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

// TokenVerifier resolves a session token to an identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// Auth protects routes that require a signed-in visitor. Without a valid
// token the visitor is sent to the login page and the requested path is
// remembered for after sign-in.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := AuthToken(c)
			if token == "" {
				return redirectToLogin(c)
			}

			identity, err := verifier.Verify(c.Request().Context(), token)
			if err != nil || identity == nil {
				logging.FromContext(c.Request().Context()).Info("Rejected session token", "error", err)
				ClearAuthCookie(c)
				return redirectToLogin(c)
			}

			if identity.Email == "" {
				identity.Email = view.SessionEmail(c)
			}
			c.Set(UserContextKey, identity)
			return next(c)
		}
	}
}

// GuestOnly sends visitors who are already signed in to the dashboard.
// Used on the sign-in and sign-up screens.
func GuestOnly(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IsSignedIn(c, verifier) {
				return c.Redirect(http.StatusSeeOther, DashboardPath)
			}
			return next(c)
		}
	}
}

// IsSignedIn reports whether the request carries a valid session token.
func IsSignedIn(c echo.Context, verifier TokenVerifier) bool {
	token := AuthToken(c)
	if token == "" {
		return false
	}
	identity, err := verifier.Verify(c.Request().Context(), token)
	return err == nil && identity != nil
}

// CurrentIdentity returns the identity stored by Auth.
func CurrentIdentity(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(UserContextKey).(*domain.Identity)
	return identity, ok && identity != nil
}

// AuthToken returns the session token cookie value, or "".
func AuthToken(c echo.Context) string {
	cookie, err := c.Cookie(AuthCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetAuthCookie stores the session token. The cookie is not readable from
// scripts and is only sent over TLS when the request arrived over TLS.
func SetAuthCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie removes the session token.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectToLogin answers htmx requests with HX-Redirect so the whole page
// navigates instead of the login screen being swapped into a fragment.
func redirectToLogin(c echo.Context) error {
	req := c.Request()
	if req.Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", LoginPath)
		return c.NoContent(http.StatusOK)
	}
	if req.Method == http.MethodGet {
		view.RememberReturnPath(c, req.URL.RequestURI())
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}
