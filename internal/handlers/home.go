package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/middleware"
	"github.com/vintechs/portal/internal/rendering"
	"github.com/vintechs/portal/web/src/templates/pages"
)

// HomeHandler handles requests for the landing page.
type HomeHandler struct {
	verifier middleware.TokenVerifier
	catalog  CatalogSource
	renderer rendering.Renderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(verifier middleware.TokenVerifier, catalog CatalogSource, renderer rendering.Renderer) *HomeHandler {
	return &HomeHandler{verifier: verifier, catalog: catalog, renderer: renderer}
}

// HomeGet renders the landing page. Signed-in visitors see a link to their
// dashboard instead of the sign-in buttons.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	content := pages.Landing(pages.LandingData{
		SignedIn: middleware.IsSignedIn(c, h.verifier),
		Catalog:  h.catalog.Current(),
		Year:     time.Now().Year(),
	})
	return h.renderer.RenderPage(c, http.StatusOK, page(c, "", content))
}
