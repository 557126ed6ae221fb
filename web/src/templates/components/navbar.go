package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Navbar is the landing page header. Signed-in visitors get a dashboard
// link instead of the sign-in buttons.
func Navbar(appName string, signedIn bool) cmp.Node {
	return g.Header(
		g.Class("fixed top-0 inset-x-0 z-40 border-b border-slate-200 bg-white/80 backdrop-blur"),
		g.Nav(
			g.Class("container mx-auto flex h-16 items-center justify-between px-4"),
			Logo(appName, false),
			g.Div(
				g.Class("hidden md:flex items-center gap-8 text-sm text-slate-600"),
				navLink("#features", "Features"),
				navLink("#pricing", "Pricing"),
				navLink("#support", "Support"),
			),
			g.Div(
				g.Class("flex items-center gap-3"),
				cmp.If(signedIn, buttonLink("/dashboard", "Dashboard", true)),
				cmp.If(!signedIn, cmp.Group{
					buttonLink("/auth/login", "Log in", false),
					buttonLink("/auth/signup", "Get Started", true),
				}),
			),
		),
	)
}

func navLink(href, label string) cmp.Node {
	return g.A(g.Href(href), g.Class("hover:text-slate-900 transition-colors"), cmp.Text(label))
}

func buttonLink(href, label string, primary bool) cmp.Node {
	class := "inline-flex items-center rounded-lg px-4 py-2 text-sm font-medium transition-colors "
	if primary {
		class += "bg-teal-600 text-white hover:bg-teal-700"
	} else {
		class += "text-slate-700 hover:bg-slate-100"
	}
	return g.A(g.Href(href), g.Class(class), cmp.Text(label))
}
