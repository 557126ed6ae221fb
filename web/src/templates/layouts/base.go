package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/vintechs/portal/internal/view"
	"github.com/vintechs/portal/web/src/templates/partials"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const (
	tailwindSrc = "https://cdn.tailwindcss.com"
	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
	lucideSrc   = "https://unpkg.com/lucide@0.460.0/dist/umd/lucide.min.js"
)

// Icons are placeholders until lucide replaces them, including in content
// htmx swaps in later.
const iconBootstrap = `lucide.createIcons();
document.body.addEventListener("htmx:afterSwap", function () { lucide.createIcons(); });`

// Base wraps page content in the HTML document with the toast area.
func Base(title string, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(title,
			view.AdaptTemplToGomponent(ctx, partials.Toasts(flashes)),
			view.AdaptTemplToGomponent(ctx, content),
		).Render(w)
	})
}

func document(title string, body ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				cmp.El("title", cmp.Text(CalculateTitle(title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				g.Script(g.Src(tailwindSrc)),
				g.Script(g.Src(htmxSrc)),
				g.Script(g.Src(lucideSrc)),
			),
			g.Body(
				g.Class("min-h-screen bg-slate-50 text-slate-900 antialiased"),
				cmp.Group(body),
				g.Script(cmp.Raw(iconBootstrap)),
			),
		),
	)
}
