package partials

import (
	"github.com/a-h/templ"
	"github.com/vintechs/portal/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// ToastsID is the id of the toast container.
const ToastsID = "toasts"

// Toasts renders flash messages as dismissible toasts.
func Toasts(flashes view.FlashData) templ.Component {
	return view.AdaptGomponentToTempl(toastList(flashes))
}

// toastList is the toast container.
func toastList(flashes view.FlashData) cmp.Node {
	return g.Div(
		g.ID(ToastsID),
		g.Class("fixed top-4 right-4 z-50 flex flex-col gap-2"),
		g.Role("status"),
		g.Aria("live", "polite"),
		cmp.Map(flashes.Success, func(msg string) cmp.Node {
			return toast("success", "border-emerald-200 bg-emerald-50 text-emerald-800", msg)
		}),
		cmp.Map(flashes.Error, func(msg string) cmp.Node {
			return toast("error", "border-red-200 bg-red-50 text-red-800", msg)
		}),
	)
}

func toast(kind, colors, msg string) cmp.Node {
	return g.Div(
		g.Class("toast toast-"+kind+" flex items-start gap-3 rounded-lg border px-4 py-3 shadow-lg "+colors),
		g.P(g.Class("text-sm font-medium"), cmp.Text(msg)),
		g.Button(
			g.Type("button"),
			g.Class("ml-auto text-sm opacity-60 hover:opacity-100"),
			g.Aria("label", "Dismiss"),
			cmp.Attr("onclick", "this.parentElement.remove()"),
			cmp.Text("×"),
		),
	)
}
