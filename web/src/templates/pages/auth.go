package pages

import (
	"fmt"
	"time"

	authdto "github.com/vintechs/portal/internal/view/dto/auth"
	"github.com/vintechs/portal/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Auth renders the sign-in or sign-up screen.
func Auth(data authdto.PageData) cmp.Node {
	return g.Div(
		g.Class("min-h-screen flex"),
		authBranding(data),
		g.Div(
			g.Class("flex-1 flex items-center justify-center p-8"),
			g.Div(
				g.Class("w-full max-w-md"),
				g.A(
					g.Href("/"),
					g.Class("inline-flex items-center gap-2 text-sm text-slate-500 hover:text-slate-900 mb-8"),
					components.Icon("arrow-left", "w-4 h-4"),
					cmp.Text("Back to home"),
				),
				g.H2(g.Class("text-2xl font-bold mb-2"), cmp.Text(pick(data.IsSignUp(), "Create your account", "Log in to your account"))),
				g.P(g.Class("text-slate-500 mb-8"), cmp.Text(pick(data.IsSignUp(),
					"Get started with your hosting account today",
					"Enter your credentials to access your dashboard"))),
				authForm(data),
				g.P(
					g.Class("mt-6 text-center text-sm text-slate-500"),
					cmp.Text(pick(data.IsSignUp(), "Already have an account? ", "Don't have an account? ")),
					g.A(
						g.Href(pick(data.IsSignUp(), "/auth/login", "/auth/signup")),
						g.Class("font-medium text-teal-600 hover:underline"),
						cmp.Text(pick(data.IsSignUp(), "Log in", "Sign up")),
					),
				),
				cmp.If(data.IsSignUp(), g.P(
					g.Class("mt-4 text-center text-xs text-slate-400"),
					cmp.Text("By creating an account, you agree to our "),
					g.A(g.Href("#"), g.Class("underline"), cmp.Text("Terms of Service")),
					cmp.Text(" and "),
					g.A(g.Href("#"), g.Class("underline"), cmp.Text("Privacy Policy")),
				)),
			),
		),
	)
}

func authBranding(data authdto.PageData) cmp.Node {
	return g.Div(
		g.Class("hidden lg:flex lg:w-1/2 flex-col justify-between bg-slate-900 p-12 text-white"),
		components.Logo(data.AppName, true),
		g.Div(
			g.H1(g.Class("text-4xl font-bold mb-4"), cmp.Text(pick(data.IsSignUp(), "Start Hosting Today", "Welcome Back"))),
			g.P(g.Class("text-lg text-white/70 mb-8"), cmp.Text(pick(data.IsSignUp(),
				"Create your account and launch your website in minutes. Affordable hosting for Kenyan businesses and developers.",
				"Log in to manage your hosting accounts, view analytics, and access your dashboard."))),
			cmp.If(data.IsSignUp(), g.Ul(
				g.Class("benefits space-y-4"),
				cmp.Map(data.Benefits, func(b string) cmp.Node {
					return g.Li(
						g.Class("flex items-center gap-3"),
						g.Div(g.Class("w-6 h-6 rounded-full bg-teal-500/20 flex items-center justify-center"), components.Icon("check", "w-4 h-4 text-teal-400")),
						cmp.Text(b),
					)
				}),
			)),
		),
		g.P(g.Class("text-sm text-white/50"), cmp.Text(fmt.Sprintf("© %d %s Hosting", time.Now().Year(), data.AppName))),
	)
}

func authForm(data authdto.PageData) cmp.Node {
	action := pick(data.IsSignUp(), "/auth/signup", "/auth/login")
	return cmp.El("form",
		g.Method("post"),
		g.Action(action),
		cmp.Attr("novalidate"),
		g.Class("space-y-5"),
		cmp.If(data.IsSignUp(), g.Div(
			g.Class("grid grid-cols-2 gap-4"),
			textField("first_name", "First Name", "text", "John", data.Values.FirstName, data.Error("first_name"), "given-name"),
			textField("last_name", "Last Name", "text", "Doe", data.Values.LastName, data.Error("last_name"), "family-name"),
		)),
		textField("email", "Email", "email", "you@example.com", data.Values.Email, data.Error("email"), "email"),
		g.Div(
			g.Div(
				g.Class("flex items-center justify-between mb-2"),
				label("password", "Password"),
				cmp.If(!data.IsSignUp(), g.A(g.Href("#"), g.Class("text-sm text-teal-600 hover:underline"), cmp.Text("Forgot password?"))),
			),
			components.PasswordField(components.PasswordFieldProps{
				NewPassword: data.IsSignUp(),
				Invalid:     data.Error("password") != "",
			}),
			components.FieldError("password", data.Error("password")),
			cmp.If(data.IsSignUp() && data.Error("password") == "",
				g.P(g.Class("mt-1 text-xs text-slate-400"), cmp.Text("Must be at least 8 characters")),
			),
		),
		g.Button(
			g.Type("submit"),
			g.Class("w-full h-12 rounded-lg bg-teal-600 font-semibold text-white hover:bg-teal-700"),
			cmp.Text(pick(data.IsSignUp(), "Create Account", "Log In")),
		),
	)
}

func textField(name, labelText, inputType, placeholder, value, errMsg, autocomplete string) cmp.Node {
	class := "w-full h-12 rounded-lg border bg-white px-3 text-sm focus:outline-none focus:ring-2 "
	if errMsg != "" {
		class += "border-red-400 focus:ring-red-300"
	} else {
		class += "border-slate-300 focus:ring-teal-300"
	}
	return g.Div(
		g.Div(g.Class("mb-2"), label(name, labelText)),
		g.Input(
			g.ID(name),
			g.Name(name),
			g.Type(inputType),
			g.Value(value),
			g.Placeholder(placeholder),
			cmp.Attr("autocomplete", autocomplete),
			g.Class(class),
		),
		components.FieldError(name, errMsg),
	)
}

func label(forID, text string) cmp.Node {
	return cmp.El("label", cmp.Attr("for", forID), g.Class("text-sm font-medium"), cmp.Text(text))
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
