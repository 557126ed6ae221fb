package components

import (
	"github.com/vintechs/portal/internal/view/dto/dashboard"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	UserCardID   = "user-card"
	UserCardPath = "/dashboard/profile-card"
)

// UserCardPlaceholder is rendered with the page and replaces itself with
// the profile card once it has loaded.
func UserCardPlaceholder() cmp.Node {
	return g.Div(
		g.ID(UserCardID),
		g.Class("flex items-center gap-3"),
		hx.Get(UserCardPath),
		hx.Trigger("load"),
		hx.Swap("outerHTML"),
		avatar("…"),
		g.Div(
			g.Class("min-w-0"),
			g.P(g.Class("text-sm font-medium text-white/80 animate-pulse"), cmp.Text("Loading...")),
		),
	)
}

// UserCard shows who is signed in.
func UserCard(data dashboard.UserCard) cmp.Node {
	return g.Div(
		g.ID(UserCardID),
		g.Class("flex items-center gap-3"),
		avatar(data.Initials),
		g.Div(
			g.Class("min-w-0"),
			g.P(g.Class("user-name text-sm font-medium text-white truncate"), cmp.Text(data.Name)),
			g.P(g.Class("user-email text-xs text-white/60 truncate"), cmp.Text(data.Email)),
		),
	)
}

func avatar(initials string) cmp.Node {
	return g.Div(
		g.Class("w-10 h-10 shrink-0 rounded-full bg-teal-500 flex items-center justify-center"),
		g.Span(g.Class("text-sm font-semibold text-white"), cmp.Text(initials)),
	)
}
