package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Icon renders a lucide icon placeholder.
func Icon(name, class string) cmp.Node {
	return g.I(g.Data("lucide", name), g.Class(class), g.Aria("hidden", "true"))
}

// Logo is the brand mark linking home.
func Logo(appName string, dark bool) cmp.Node {
	textClass := "font-bold text-xl text-slate-900"
	if dark {
		textClass = "font-bold text-xl text-white"
	}
	return g.A(
		g.Href("/"),
		g.Class("flex items-center gap-2"),
		g.Div(
			g.Class("w-10 h-10 rounded-xl bg-teal-600 flex items-center justify-center"),
			Icon("server", "w-5 h-5 text-white"),
		),
		g.Span(g.Class(textClass), cmp.Text(appName)),
	)
}
