package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/vintechs/portal/internal/config"
	"github.com/vintechs/portal/internal/domain"
	"github.com/vintechs/portal/internal/handlers"
	"github.com/vintechs/portal/internal/logging"
	"github.com/vintechs/portal/internal/middleware"
	"github.com/vintechs/portal/internal/pubsub"
	"github.com/vintechs/portal/internal/rendering"
	"github.com/vintechs/portal/internal/validation"
	"github.com/vintechs/portal/internal/view"
	"github.com/vintechs/portal/web/src/templates/layouts"
)

const sessionMaxAge = 86400 * 7

// Dependencies are the collaborators the HTTP server is built from.
type Dependencies struct {
	Config    config.Provider
	Identity  domain.IdentityProvider
	Profiles  domain.ProfileRepository
	Catalog   handlers.CatalogSource
	Publisher pubsub.Publisher
	Renderer  rendering.Renderer
	// Ping backs the health check. Optional.
	Ping handlers.Pinger
	// Echo lets tests supply their own instance. Optional.
	Echo *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
	verifier         middleware.TokenVerifier
}

// New creates a Server with its middleware stack in place. Routes are added
// by RegisterRoutes.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil || deps.Identity == nil || deps.Profiles == nil ||
		deps.Catalog == nil || deps.Publisher == nil || deps.Renderer == nil {
		return nil, errors.New("server: missing required dependency")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	if r, ok := deps.Renderer.(echo.Renderer); ok {
		e.Renderer = r
	}
	setupErrorHandling(e)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger)
	e.Use(echomw.Secure())

	e.Use(session.Middleware(view.NewSessionStore(deps.Config.GetSessionSecret(), sessionMaxAge)))

	cfg := deps.Config
	layouts.AppName = cfg.GetAppName()
	return &Server{
		E:                e,
		Cfg:              cfg,
		homeHandler:      handlers.NewHomeHandler(deps.Identity, deps.Catalog, deps.Renderer),
		authHandler:      handlers.NewAuthHandler(deps.Identity, deps.Catalog, deps.Publisher, deps.Renderer, cfg.GetAppName(), cfg.GetAuthTokenTTL()),
		dashboardHandler: handlers.NewDashboardHandler(deps.Profiles, deps.Catalog, deps.Renderer, cfg.GetAppName()),
		healthHandler:    handlers.NewHealthHandler(deps.Ping),
		verifier:         deps.Identity,
	}, nil
}

// setupErrorHandling logs unhandled errors with a stack trace and leaves
// the response to echo's default handler.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			logging.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		} else if he.Code >= http.StatusInternalServerError {
			logging.FromContext(c.Request().Context()).Error("Server error",
				"status", he.Code,
				"error", fmt.Sprint(he.Message),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
