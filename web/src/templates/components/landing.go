package components

import (
	"fmt"

	"github.com/vintechs/portal/internal/catalog"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Hero is the landing page's opening section.
func Hero(h catalog.Hero) cmp.Node {
	return g.Section(
		g.Class("relative pt-32 pb-20 overflow-hidden"),
		g.Div(
			g.Class("container mx-auto px-4 max-w-4xl text-center"),
			g.Div(
				g.Class("inline-flex items-center gap-2 px-4 py-2 rounded-full bg-teal-50 border border-teal-200 text-teal-700 text-sm font-medium mb-8"),
				Icon("zap", "w-4 h-4"),
				cmp.Text(h.Badge),
			),
			g.H1(
				g.Class("text-4xl sm:text-5xl md:text-6xl font-bold tracking-tight mb-6"),
				cmp.Text(h.Title+" "),
				g.Span(g.Class("text-teal-600"), cmp.Text(h.Highlight)),
			),
			g.P(g.Class("text-lg md:text-xl text-slate-600 max-w-2xl mx-auto mb-10"), cmp.Text(h.Subtitle)),
			g.Div(
				g.Class("flex flex-col sm:flex-row items-center justify-center gap-4 mb-12"),
				g.A(
					g.Href("/auth/signup"),
					g.Class("inline-flex items-center gap-2 rounded-xl bg-teal-600 px-8 py-4 text-lg font-semibold text-white hover:bg-teal-700"),
					cmp.Text(h.PrimaryCTA),
					Icon("arrow-right", "w-5 h-5"),
				),
				g.A(
					g.Href("#pricing"),
					g.Class("inline-flex items-center rounded-xl border border-slate-300 px-8 py-4 text-lg font-semibold hover:bg-slate-100"),
					cmp.Text(h.SecondaryCTA),
				),
			),
			g.Div(
				g.Class("flex flex-wrap items-center justify-center gap-6 md:gap-10"),
				cmp.Map(h.Badges, func(b string) cmp.Node {
					return g.Div(
						g.Class("flex items-center gap-2 text-slate-600"),
						Icon("check-circle", "w-5 h-5 text-teal-600"),
						g.Span(g.Class("text-sm font-medium"), cmp.Text(b)),
					)
				}),
			),
			heroPreview(h.PreviewStats),
		),
	)
}

func heroPreview(stats []catalog.Stat) cmp.Node {
	return g.Div(
		g.Class("mt-16 rounded-2xl border border-slate-200 bg-white shadow-xl text-left"),
		g.Div(
			g.Class("p-6 md:p-8 space-y-6"),
			g.Div(
				g.Class("flex items-center justify-between"),
				g.Div(
					g.H3(g.Class("font-semibold text-lg"), cmp.Text("Your Hosting Dashboard")),
					g.P(g.Class("text-sm text-slate-500"), cmp.Text("Manage your websites and domains")),
				),
				g.Span(g.Class("px-3 py-1 rounded-full bg-emerald-50 text-emerald-700 text-sm font-medium"), cmp.Text("All Systems Operational")),
			),
			g.Div(
				g.Class("grid grid-cols-1 md:grid-cols-3 gap-4"),
				cmp.Map(stats, func(s catalog.Stat) cmp.Node {
					return g.Div(
						g.Class("rounded-xl bg-slate-50 p-4"),
						g.P(g.Class("text-sm text-slate-500"), cmp.Text(s.Label)),
						g.P(g.Class("text-2xl font-bold mt-1"), cmp.Text(s.Value)),
					)
				}),
			),
		),
	)
}

// Features lists what every plan includes.
func Features(features []catalog.Feature) cmp.Node {
	return g.Section(
		g.ID("features"),
		g.Class("py-20 bg-white"),
		g.Div(
			g.Class("container mx-auto px-4"),
			sectionHeader("Features", "Everything You Need to ", "Succeed Online",
				"Powerful hosting features designed for Kenyan businesses and developers. Get started in minutes."),
			g.Div(
				g.Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-4 gap-6"),
				cmp.Map(features, func(f catalog.Feature) cmp.Node {
					return g.Div(
						g.Class("feature rounded-2xl border border-slate-200 p-6 hover:shadow-lg transition-shadow"),
						g.Div(
							g.Class("w-12 h-12 rounded-xl bg-teal-50 flex items-center justify-center mb-4"),
							Icon(f.Icon, "w-6 h-6 text-teal-600"),
						),
						g.H3(g.Class("font-semibold text-lg mb-2"), cmp.Text(f.Title)),
						g.P(g.Class("text-sm text-slate-600 leading-relaxed"), cmp.Text(f.Description)),
					)
				}),
			),
		),
	)
}

// Pricing shows the plans, highlighting the popular one.
func Pricing(plans []catalog.Plan) cmp.Node {
	return g.Section(
		g.ID("pricing"),
		g.Class("py-20"),
		g.Div(
			g.Class("container mx-auto px-4"),
			sectionHeader("Pricing", "Simple, Transparent ", "Pricing",
				"Choose the plan that fits your needs. Pay with M-Pesa or card. Upgrade or cancel anytime."),
			g.Div(
				g.Class("grid grid-cols-1 md:grid-cols-3 gap-8 max-w-6xl mx-auto"),
				cmp.Map(plans, planCard),
			),
			g.P(
				g.Class("mt-12 text-center text-sm text-slate-500"),
				cmp.Text("Pay securely with "),
				g.Strong(cmp.Text("M-Pesa")), cmp.Text(", "),
				g.Strong(cmp.Text("Visa")), cmp.Text(", or "),
				g.Strong(cmp.Text("Mastercard")),
			),
		),
	)
}

func planCard(p catalog.Plan) cmp.Node {
	cardClass := "plan relative rounded-2xl border p-8 "
	if p.Popular {
		cardClass += "plan-popular border-teal-600 bg-slate-900 text-white shadow-2xl md:scale-105"
	} else {
		cardClass += "border-slate-200 bg-white"
	}
	return g.Div(
		g.Class(cardClass),
		cmp.If(p.Popular, g.Span(
			g.Class("absolute -top-4 left-1/2 -translate-x-1/2 rounded-full bg-amber-400 px-4 py-1 text-sm font-semibold text-slate-900"),
			cmp.Text("Most Popular"),
		)),
		g.H3(g.Class("text-xl font-bold"), cmp.Text(p.Name)),
		g.P(g.Class("mt-1 text-sm opacity-70"), cmp.Text(p.Description)),
		g.P(
			g.Class("mt-6"),
			g.Span(g.Class("text-sm opacity-70"), cmp.Text("KSh ")),
			g.Span(g.Class("text-4xl font-bold"), cmp.Text(p.Price)),
			g.Span(g.Class("text-sm opacity-70"), cmp.Text(p.Period)),
		),
		g.Ul(
			g.Class("mt-8 space-y-3"),
			cmp.Map(p.Features, func(f string) cmp.Node {
				return g.Li(g.Class("flex items-center gap-3 text-sm"), Icon("check", "w-4 h-4 text-teal-500"), cmp.Text(f))
			}),
		),
		g.A(
			g.Href("/auth/signup"),
			g.Class("mt-8 block rounded-lg bg-teal-600 py-3 text-center font-semibold text-white hover:bg-teal-700"),
			cmp.Text("Get Started"),
		),
	)
}

func sectionHeader(eyebrow, title, highlight, lead string) cmp.Node {
	return g.Div(
		g.Class("text-center max-w-3xl mx-auto mb-16"),
		g.Span(g.Class("text-teal-600 font-semibold text-sm uppercase tracking-wider"), cmp.Text(eyebrow)),
		g.H2(
			g.Class("text-3xl md:text-4xl lg:text-5xl font-bold mt-3 mb-4"),
			cmp.Text(title),
			g.Span(g.Class("text-teal-600"), cmp.Text(highlight)),
		),
		g.P(g.Class("text-slate-600 text-lg"), cmp.Text(lead)),
	)
}

// Footer closes the landing page with link columns and contact details.
func Footer(brand catalog.Brand, footer catalog.Footer, contact catalog.Contact, year int) cmp.Node {
	return g.Footer(
		g.ID("support"),
		g.Class("bg-slate-900 text-white"),
		g.Div(
			g.Class("container mx-auto px-4 py-16"),
			g.Div(
				g.Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-5 gap-12"),
				g.Div(
					g.Class("lg:col-span-2"),
					Logo(brand.Name, true),
					g.P(g.Class("mt-4 mb-6 max-w-sm text-white/70"), cmp.Text(brand.Tagline)),
					g.Ul(
						g.Class("space-y-2 text-sm text-white/70"),
						contactLine("mail", contact.Email),
						contactLine("phone", contact.Phone),
						contactLine("map-pin", contact.Location),
					),
				),
				cmp.Map(footer.Columns, func(col catalog.FooterColumn) cmp.Node {
					return g.Div(
						g.H4(g.Class("font-semibold mb-4"), cmp.Text(col.Title)),
						g.Ul(
							g.Class("space-y-2"),
							cmp.Map(col.Links, func(l catalog.NavLink) cmp.Node {
								return g.Li(g.A(g.Href(l.Href), g.Class("text-sm text-white/70 hover:text-white"), cmp.Text(l.Label)))
							}),
						),
					)
				}),
			),
			g.Div(
				g.Class("mt-12 pt-8 border-t border-white/10 text-sm text-white/60"),
				cmp.Text(fmt.Sprintf("© %d %s Hosting. All rights reserved.", year, brand.Name)),
			),
		),
	)
}

func contactLine(icon, text string) cmp.Node {
	return cmp.If(text != "", g.Li(g.Class("flex items-center gap-2"), Icon(icon, "w-4 h-4"), cmp.Text(text)))
}
