package pages

import (
	"strconv"

	"github.com/vintechs/portal/internal/catalog"
	"github.com/vintechs/portal/internal/view/dto/dashboard"
	"github.com/vintechs/portal/web/src/templates/components"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Dashboard is the signed-in overview. The user card loads separately.
func Dashboard(data dashboard.PageData) cmp.Node {
	c := data.Catalog
	return g.Div(
		g.Class("min-h-screen flex"),
		sidebar(data.AppName, c.SidebarLinks),
		g.Main(
			g.Class("flex-1 min-w-0"),
			g.Header(
				g.Class("sticky top-0 z-30 border-b border-slate-200 bg-white/80 backdrop-blur px-6 py-4 flex items-center justify-between"),
				g.Div(
					g.H1(g.Class("text-xl font-bold"), cmp.Text("Dashboard")),
					g.P(g.Class("text-sm text-slate-500"), cmp.Text("Manage your hosting accounts")),
				),
				g.Button(
					g.Type("button"),
					g.Class("inline-flex items-center gap-2 rounded-lg bg-teal-600 px-3 py-2 text-sm font-medium text-white hover:bg-teal-700"),
					components.Icon("plus", "w-4 h-4"),
					cmp.Text("New Website"),
				),
			),
			g.Div(
				g.Class("p-6 space-y-8"),
				stats(c.Stats),
				accounts(c.Accounts),
				quickActions(c.QuickActions),
			),
		),
	)
}

func sidebar(appName string, links []catalog.NavLink) cmp.Node {
	return g.Aside(
		g.Class("w-64 shrink-0 bg-slate-900 text-white flex flex-col"),
		g.Div(g.Class("p-6"), components.Logo(appName, true)),
		g.Nav(
			g.Class("flex-1 px-4 space-y-1"),
			cmp.Map(links, func(l catalog.NavLink) cmp.Node {
				class := "flex items-center gap-3 rounded-lg px-4 py-3 text-sm transition-colors "
				if l.Active {
					class += "bg-white/10 text-white"
				} else {
					class += "text-white/70 hover:bg-white/5 hover:text-white"
				}
				return g.A(g.Href(l.Href), g.Class(class), components.Icon(l.Icon, "w-5 h-5"), cmp.Text(l.Label))
			}),
		),
		g.Div(
			g.Class("p-4 border-t border-white/10 space-y-3"),
			components.UserCardPlaceholder(),
			cmp.El("form",
				g.Method("post"),
				g.Action("/auth/logout"),
				g.Button(
					g.Type("submit"),
					g.Class("w-full flex items-center gap-2 rounded-lg px-4 py-2 text-sm text-white/70 hover:bg-white/5 hover:text-white"),
					components.Icon("log-out", "w-4 h-4"),
					cmp.Text("Log Out"),
				),
			),
		),
	)
}

func stats(items []catalog.Stat) cmp.Node {
	return g.Div(
		g.Class("grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-4 gap-4"),
		cmp.Map(items, func(s catalog.Stat) cmp.Node {
			return g.Div(
				g.Class("stat rounded-xl border border-slate-200 bg-white p-6 flex items-center justify-between"),
				g.Div(
					g.P(g.Class("text-sm text-slate-500"), cmp.Text(s.Label)),
					g.P(g.Class("text-2xl font-bold mt-1"), cmp.Text(s.Value)),
				),
				g.Div(g.Class("w-12 h-12 rounded-xl bg-teal-50 flex items-center justify-center"), components.Icon(s.Icon, "w-6 h-6 text-teal-600")),
			)
		}),
	)
}

func accounts(items []catalog.Account) cmp.Node {
	return g.Section(
		g.Div(
			g.Class("flex items-center justify-between mb-4"),
			g.H2(g.Class("text-lg font-semibold"), cmp.Text("Your Websites")),
			g.Button(g.Type("button"), g.Class("text-sm text-slate-500 hover:text-slate-900"), cmp.Text("View All")),
		),
		g.Div(
			g.Class("grid grid-cols-1 lg:grid-cols-2 gap-4"),
			cmp.Map(items, accountCard),
		),
	)
}

func accountCard(a catalog.Account) cmp.Node {
	return g.Div(
		g.Class("account rounded-xl border border-slate-200 bg-white p-6"),
		g.Div(
			g.Class("flex items-start justify-between mb-4"),
			g.Div(
				g.Class("flex items-center gap-3"),
				g.Div(g.Class("w-10 h-10 rounded-lg bg-teal-50 flex items-center justify-center"), components.Icon("globe", "w-5 h-5 text-teal-600")),
				g.Div(
					g.H3(g.Class("font-semibold"), cmp.Text(a.Domain)),
					g.P(g.Class("text-sm text-slate-500"), cmp.Text(a.Type)),
				),
			),
			g.Span(g.Class("rounded-full bg-emerald-50 px-2 py-1 text-xs font-medium text-emerald-700"), cmp.Text(statusLabel(a.Status))),
		),
		g.Div(
			g.Class("space-y-3"),
			usageBar("Storage", a.Storage),
			usageBar("Bandwidth", a.Bandwidth),
		),
		g.Div(
			g.Class("mt-4 flex gap-2"),
			accountButton("folder-open", "File Manager"),
			cmp.If(a.IsWordPress(), accountButton("server", "WordPress")),
		),
	)
}

func usageBar(name string, u catalog.Usage) cmp.Node {
	return g.Div(
		g.Div(
			g.Class("flex justify-between text-sm mb-1"),
			g.Span(g.Class("text-slate-500"), cmp.Text(name)),
			g.Span(cmp.Text(u.UsedLabel()+" / "+u.LimitLabel())),
		),
		g.Div(
			g.Class("h-2 rounded-full bg-slate-100 overflow-hidden"),
			g.Div(
				g.Class("h-full rounded-full bg-teal-500"),
				g.Style("width: "+strconv.Itoa(u.Percent())+"%"),
				cmp.Attr("role", "progressbar"),
				g.Aria("valuenow", strconv.Itoa(u.Percent())),
				g.Aria("valuemin", "0"),
				g.Aria("valuemax", "100"),
			),
		),
	)
}

func accountButton(icon, text string) cmp.Node {
	return g.Button(
		g.Type("button"),
		g.Class("flex-1 inline-flex items-center justify-center gap-2 rounded-lg border border-slate-200 px-3 py-2 text-sm hover:bg-slate-50"),
		components.Icon(icon, "w-4 h-4"),
		cmp.Text(text),
	)
}

func quickActions(items []catalog.QuickAction) cmp.Node {
	return g.Section(
		g.H2(g.Class("text-lg font-semibold mb-4"), cmp.Text("Quick Actions")),
		g.Div(
			g.Class("grid grid-cols-2 md:grid-cols-4 gap-4"),
			cmp.Map(items, func(q catalog.QuickAction) cmp.Node {
				return g.Button(
					g.Type("button"),
					g.Class("rounded-xl border border-slate-200 bg-white p-6 flex flex-col items-center gap-3 hover:shadow-md transition-shadow"),
					g.Div(g.Class("w-12 h-12 rounded-xl bg-teal-50 flex items-center justify-center"), components.Icon(q.Icon, "w-6 h-6 text-teal-600")),
					g.Span(g.Class("text-sm font-medium"), cmp.Text(q.Label)),
				)
			}),
		),
	)
}

// statusLabel title-cases a status. Casers keep state, so each call gets its own.
func statusLabel(status string) string {
	return cases.Title(language.English).String(status)
}
