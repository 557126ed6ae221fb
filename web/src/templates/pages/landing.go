package pages

import (
	"github.com/vintechs/portal/internal/catalog"
	"github.com/vintechs/portal/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// LandingData is what the public home page needs.
type LandingData struct {
	SignedIn bool
	Catalog  *catalog.Catalog
	Year     int
}

// Landing is the marketing page.
func Landing(data LandingData) cmp.Node {
	c := data.Catalog
	return g.Div(
		components.Navbar(c.Brand.Name, data.SignedIn),
		g.Main(
			components.Hero(c.Hero),
			components.Features(c.Features),
			components.Pricing(c.Plans),
		),
		components.Footer(c.Brand, c.Footer, c.Contact, data.Year),
	)
}
