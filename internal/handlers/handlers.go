package handlers

import (
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/catalog"
	"github.com/vintechs/portal/internal/logging"
	"github.com/vintechs/portal/internal/pubsub"
	"github.com/vintechs/portal/internal/view"
	"github.com/vintechs/portal/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
)

// CatalogSource hands out the current content catalog.
type CatalogSource interface {
	Current() *catalog.Catalog
}

// page wraps a gomponents page in the base layout together with any flash
// messages waiting in the session.
func page(c echo.Context, title string, content cmp.Node) templ.Component {
	return layouts.Base(title, view.GetFlashData(c), view.AdaptGomponentToTempl(content))
}

// publishAuthEvent is best effort: a failed publish is logged and the
// request carries on.
func publishAuthEvent(c echo.Context, pub pubsub.Publisher, event pubsub.Event[pubsub.AuthEvent], payload pubsub.AuthEvent) {
	payload.At = time.Now().UTC()
	ctx := c.Request().Context()
	if err := pubsub.Publish(ctx, pub, event, payload.UserID, payload); err != nil {
		logging.FromContext(ctx).Error("Failed to publish auth event", "topic", event.Name(), "error", err)
	}
}
