package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/domain"
	"github.com/vintechs/portal/internal/logging"
	"github.com/vintechs/portal/internal/middleware"
	"github.com/vintechs/portal/internal/rendering"
	"github.com/vintechs/portal/internal/view/dto/dashboard"
	"github.com/vintechs/portal/web/src/templates/components"
	"github.com/vintechs/portal/web/src/templates/pages"
)

// DashboardHandler handles requests for the user dashboard.
type DashboardHandler struct {
	profiles domain.ProfileRepository
	catalog  CatalogSource
	renderer rendering.Renderer
	appName  string
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(profiles domain.ProfileRepository, catalog CatalogSource, renderer rendering.Renderer, appName string) *DashboardHandler {
	return &DashboardHandler{profiles: profiles, catalog: catalog, renderer: renderer, appName: appName}
}

// DashboardGet shows the dashboard. The Auth middleware has already placed
// the identity in the context.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	content := pages.Dashboard(dashboard.PageData{
		AppName: h.appName,
		Email:   identity.Email,
		Catalog: h.catalog.Current(),
	})
	return h.renderer.RenderPage(c, http.StatusOK, page(c, "Dashboard", content))
}

// ProfileCardGet renders the sidebar user card. When the profile cannot be
// read the card falls back to the session email.
func (h *DashboardHandler) ProfileCardGet(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	ctx := c.Request().Context()
	profile, err := h.profiles.FindProfileByID(ctx, identity.ID)
	if err != nil {
		logger := logging.FromContext(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("No profile record for user", "error", err)
		} else {
			logger.Error("Failed to load profile", "error", err)
		}
		profile = nil
	}

	card := dashboard.UserCard{
		Name:     profile.DisplayName(identity.Email),
		Email:    profile.ContactEmail(identity.Email),
		Initials: profile.Initials(identity.Email),
	}
	return h.renderer.RenderPage(c, http.StatusOK, components.UserCard(card))
}
