package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/middleware"
	"github.com/vintechs/portal/web"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()
	guestOnly := middleware.GuestOnly(s.verifier)
	requireAuth := middleware.Auth(s.verifier)

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E.GET("/", s.homeHandler.HomeGet)
	s.E.GET("/health", s.healthHandler.HealthGet)

	authGroup := s.E.Group("/auth")
	authGroup.GET("", redirectTo(middleware.LoginPath))
	authGroup.GET("/login", s.authHandler.LoginGet, guestOnly)
	authGroup.POST("/login", s.authHandler.LoginPost, guestOnly, rateLimiter)
	authGroup.GET("/signup", s.authHandler.SignupGet, guestOnly)
	authGroup.POST("/signup", s.authHandler.SignupPost, guestOnly, rateLimiter)
	authGroup.POST("/logout", s.authHandler.Logout)
	authGroup.Match([]string{http.MethodGet, http.MethodPost}, "/password-field", s.authHandler.PasswordFieldGet)

	s.E.GET("/login", redirectTo(middleware.LoginPath))
	s.E.GET("/signup", redirectTo("/auth/signup"))

	dashboardGroup := s.E.Group(middleware.DashboardPath, requireAuth)
	dashboardGroup.GET("", s.dashboardHandler.DashboardGet)
	dashboardGroup.GET("/profile-card", s.dashboardHandler.ProfileCardGet)
}

func redirectTo(path string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, path)
	}
}
