package view

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/logging"
)

const (
	authSessionName  = "auth-session"
	sessionKeyEmail  = "email"
	sessionKeyReturn = "return_to"
)

// NewSessionStore returns the cookie store behind the flash and auth
// sessions. Cookies are HttpOnly, SameSite=Lax and scoped to the whole site.
// gorilla/sessions would otherwise mark them Secure with SameSite=None.
func NewSessionStore(secret string, maxAge int) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(maxAge)
	return store
}

// saveSession writes sess to the response and logs when that fails.
func saveSession(c echo.Context, sess *sessions.Session) {
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logging.FromContext(c.Request().Context()).Warn("Failed to save session", "session", sess.Name(), "error", err)
	}
}

// loadSession returns the named session, logging when it cannot be read.
func loadSession(c echo.Context, name string) (*sessions.Session, bool) {
	sess, err := session.Get(name, c)
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("Session unavailable", "session", name, "error", err)
		return nil, false
	}
	return sess, true
}

// SetSessionEmail records the signed-in visitor's email. Session tokens do
// not carry it, so pages read it from here.
func SetSessionEmail(c echo.Context, email string) {
	sess, ok := loadSession(c, authSessionName)
	if !ok {
		return
	}
	sess.Values[sessionKeyEmail] = email
	saveSession(c, sess)
}

// SessionEmail returns the email stored at sign-in, or "".
func SessionEmail(c echo.Context) string {
	sess, ok := loadSession(c, authSessionName)
	if !ok {
		return ""
	}
	email, _ := sess.Values[sessionKeyEmail].(string)
	return email
}

// ClearSession forgets the email and any pending return path.
func ClearSession(c echo.Context) {
	sess, ok := loadSession(c, authSessionName)
	if !ok {
		return
	}
	delete(sess.Values, sessionKeyEmail)
	delete(sess.Values, sessionKeyReturn)
	saveSession(c, sess)
}

// RememberReturnPath stores where to send the visitor after signing in.
// Anything that is not a local path is ignored.
func RememberReturnPath(c echo.Context, path string) {
	if !isLocalPath(path) {
		return
	}
	sess, ok := loadSession(c, authSessionName)
	if !ok {
		return
	}
	sess.Values[sessionKeyReturn] = path
	saveSession(c, sess)
}

// PopReturnPath returns and clears the stored path, or fallback.
func PopReturnPath(c echo.Context, fallback string) string {
	sess, ok := loadSession(c, authSessionName)
	if !ok {
		return fallback
	}
	path, _ := sess.Values[sessionKeyReturn].(string)
	if path == "" {
		return fallback
	}
	delete(sess.Values, sessionKeyReturn)
	saveSession(c, sess)
	if !isLocalPath(path) {
		return fallback
	}
	return path
}

// isLocalPath accepts "/x" but not "//host" or "/\host", which browsers
// treat as another origin.
func isLocalPath(path string) bool {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, `/\`) {
		return false
	}
	return !strings.HasPrefix(path, "/auth")
}
