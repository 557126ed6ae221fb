package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/vintechs/portal/internal/auth"
	"github.com/vintechs/portal/internal/catalog"
	"github.com/vintechs/portal/internal/domain"
	"github.com/vintechs/portal/internal/handlers"
	"github.com/vintechs/portal/internal/middleware"
	"github.com/vintechs/portal/internal/pubsub"
	"github.com/vintechs/portal/internal/rendering"
	"github.com/vintechs/portal/internal/testutils"
	"github.com/vintechs/portal/internal/validation"
	"github.com/vintechs/portal/internal/view"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// recordingPublisher keeps every published message.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, msg pubsub.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, msg.Topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

// failingProfiles simulates an unreachable profile store.
type failingProfiles struct{}

func (failingProfiles) FindProfileByID(context.Context, *surrealmodels.RecordID) (*domain.Profile, error) {
	return nil, errors.New("connection refused")
}

type testApp struct {
	provider  *auth.MemoryProvider
	publisher *recordingPublisher
	browser   *testutils.Browser
}

func setupTest(t *testing.T, profiles domain.ProfileRepository) *testApp {
	t.Helper()

	provider := auth.NewMemoryProvider([]byte("token-secret-for-tests"), auth.Scope{Namespace: "test", Database: "test", Access: "account"}, time.Hour)
	if profiles == nil {
		profiles = provider
	}
	store, err := catalog.NewStore("", nil)
	require.NoError(t, err)
	publisher := &recordingPublisher{}
	renderer := rendering.NewUniversalRenderer()

	e := echo.New()
	e.Validator = validation.New()
	e.Renderer = renderer
	e.Use(session.Middleware(view.NewSessionStore(testSessionSecret, 3600)))

	home := handlers.NewHomeHandler(provider, store, renderer)
	authH := handlers.NewAuthHandler(provider, store, publisher, renderer, "Vintechs", time.Hour)
	dash := handlers.NewDashboardHandler(profiles, store, renderer, "Vintechs")

	guest := middleware.GuestOnly(provider)
	protected := middleware.Auth(provider)

	e.GET("/", home.HomeGet)
	e.GET("/auth/login", authH.LoginGet, guest)
	e.POST("/auth/login", authH.LoginPost, guest)
	e.GET("/auth/signup", authH.SignupGet, guest)
	e.POST("/auth/signup", authH.SignupPost, guest)
	e.POST("/auth/logout", authH.Logout)
	e.Match([]string{http.MethodGet, http.MethodPost}, "/auth/password-field", authH.PasswordFieldGet)
	e.GET("/dashboard", dash.DashboardGet, protected)
	e.GET("/dashboard/profile-card", dash.ProfileCardGet, protected)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &testApp{
		provider:  provider,
		publisher: publisher,
		browser:   testutils.NewBrowser(t, srv.URL),
	}
}

func signupForm(first, last, email, password string) url.Values {
	return url.Values{
		"first_name": {first},
		"last_name":  {last},
		"email":      {email},
		"password":   {password},
	}
}

func TestSignupJohnDoeReachesDashboard(t *testing.T) {
	app := setupTest(t, nil)

	resp := app.browser.PostForm("/auth/signup", signupForm("John", "Doe", "john@example.com", "password123"))
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/dashboard", resp.Location)
	assert.NotEmpty(t, app.browser.Cookie(middleware.AuthCookieName))

	dash := app.browser.Get("/dashboard")
	require.Equal(t, http.StatusOK, dash.Status)
	assert.Contains(t, dash.Body, handlers.MsgAccountCreated)
	assert.Contains(t, dash.Body, "Loading...")

	card := app.browser.Get("/dashboard/profile-card")
	require.Equal(t, http.StatusOK, card.Status)
	assert.Contains(t, card.Body, "John Doe")
	assert.Contains(t, card.Body, "john@example.com")
	assert.Contains(t, card.Body, ">JD<")

	assert.Equal(t, []string{pubsub.UserSignedUp.Name()}, app.publisher.Topics())
}

func TestProfileFailureShowsEmail(t *testing.T) {
	app := setupTest(t, failingProfiles{})

	resp := app.browser.PostForm("/auth/signup", signupForm("John", "Doe", "john@example.com", "password123"))
	require.Equal(t, http.StatusSeeOther, resp.Status)

	card := app.browser.Get("/dashboard/profile-card")
	require.Equal(t, http.StatusOK, card.Status)
	assert.Contains(t, card.Body, `<p class="user-name text-sm font-medium text-white truncate">john@example.com</p>`)
	assert.NotContains(t, card.Body, "Loading...")
	assert.NotContains(t, card.Body, "John Doe")
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"email without at sign", signupForm("John", "Doe", "john.example.com", "password123"), "Please enter a valid email address"},
		{"short password", signupForm("John", "Doe", "john@example.com", "short"), "Password must be at least 8 characters"},
		{"missing first name", signupForm("  ", "Doe", "john@example.com", "password123"), "First name is required"},
		{"missing last name", signupForm("John", "", "john@example.com", "password123"), "Last name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTest(t, nil)

			resp := app.browser.PostForm("/auth/signup", tt.form)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
			assert.Contains(t, resp.Body, tt.message)
			assert.NotContains(t, resp.Body, "password123")
			assert.Empty(t, app.browser.Cookie(middleware.AuthCookieName))
		})
	}
}

func TestLoginFailureKeepsEmail(t *testing.T) {
	app := setupTest(t, nil)

	resp := app.browser.PostForm("/auth/login", url.Values{"email": {"ghost@example.com"}, "password": {"password123"}})
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/auth/login", resp.Location)

	page := app.browser.Get("/auth/login")
	require.Equal(t, http.StatusOK, page.Status)
	assert.Contains(t, page.Body, auth.MsgInvalidCredentials)
	assert.Contains(t, page.Body, `value="ghost@example.com"`)

	// Flashes are shown once.
	again := app.browser.Get("/auth/login")
	assert.NotContains(t, again.Body, auth.MsgInvalidCredentials)
}

func TestDuplicateSignup(t *testing.T) {
	app := setupTest(t, nil)
	_, err := app.provider.SignUp(context.Background(), domain.Registration{
		Credentials: domain.Credentials{Email: "john@example.com", Password: "password123"},
	})
	require.NoError(t, err)

	resp := app.browser.PostForm("/auth/signup", signupForm("John", "Doe", "john@example.com", "password123"))
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, handlers.SignupPath, resp.Location)

	page := app.browser.Get("/auth/signup")
	assert.Contains(t, page.Body, auth.MsgAlreadyRegistered)
	assert.Contains(t, page.Body, `value="John"`)
}

func TestLoginAndLogout(t *testing.T) {
	app := setupTest(t, nil)
	_, err := app.provider.SignUp(context.Background(), domain.Registration{
		Credentials: domain.Credentials{Email: "john@example.com", Password: "password123"},
	})
	require.NoError(t, err)

	// The dashboard is remembered as the return path.
	resp := app.browser.Get("/dashboard")
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, middleware.LoginPath, resp.Location)

	resp = app.browser.PostForm("/auth/login", url.Values{"email": {" John@Example.com "}, "password": {"password123"}})
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/dashboard", resp.Location)

	// Signed-in visitors are sent away from the auth screens.
	resp = app.browser.Get("/auth/signup")
	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, middleware.DashboardPath, resp.Location)

	home := app.browser.Get("/")
	assert.Contains(t, home.Body, `href="/dashboard"`)

	resp = app.browser.PostForm("/auth/logout", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/", resp.Location)
	assert.Empty(t, app.browser.Cookie(middleware.AuthCookieName))

	resp = app.browser.Get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.Status)

	assert.Equal(t, []string{pubsub.UserSignedIn.Name(), pubsub.UserSignedOut.Name()}, app.publisher.Topics())
}

func TestPasswordFieldToggle(t *testing.T) {
	app := setupTest(t, nil)

	visible := true
	for i := 0; i < 4; i++ {
		resp := app.browser.PostForm("/auth/password-field?visible="+map[bool]string{true: "true", false: "false"}[visible],
			url.Values{"password": {"s3cret-pass"}}, "HX-Request", "true")
		require.Equal(t, http.StatusOK, resp.Status)

		if visible {
			assert.Contains(t, resp.Body, `type="text"`)
			assert.Contains(t, resp.Body, "visible=false")
		} else {
			assert.Contains(t, resp.Body, `type="password"`)
			assert.Contains(t, resp.Body, "visible=true")
		}
		assert.Contains(t, resp.Body, `value="s3cret-pass"`)
		assert.Equal(t, 1, strings.Count(resp.Body, "<input"))

		visible = !visible
	}
}

func TestPasswordFieldToggleKeepsSignUpState(t *testing.T) {
	app := setupTest(t, nil)

	resp := app.browser.PostForm("/auth/password-field?autocomplete=new-password&invalid=true&visible=true",
		url.Values{"password": {"short"}}, "HX-Request", "true")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, `type="text"`)
	assert.Contains(t, resp.Body, `autocomplete="new-password"`)
	assert.Contains(t, resp.Body, "border-red-400")
	assert.Contains(t, resp.Body, `value="short"`)
	assert.Contains(t, resp.Body, "autocomplete=new-password&amp;invalid=true&amp;visible=false")
}
