package components

import (
	"net/url"
	"strconv"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	// PasswordFieldID is swapped as a whole when visibility toggles.
	PasswordFieldID = "password-field"
	// PasswordFieldPath serves the re-rendered field.
	PasswordFieldPath = "/auth/password-field"
)

// PasswordFieldProps describes one rendering of the password input.
type PasswordFieldProps struct {
	Value   string
	Visible bool
	// NewPassword is set on sign-up, where the visitor picks a password.
	NewPassword bool
	// Invalid keeps the error border across visibility toggles.
	Invalid bool
}

// PasswordFieldPropsFromQuery reads the props a toggle request carries.
// The value itself is posted in the form body, never in the URL.
func PasswordFieldPropsFromQuery(q url.Values, value string) PasswordFieldProps {
	return PasswordFieldProps{
		Value:       value,
		Visible:     q.Get("visible") == "true",
		NewPassword: q.Get("autocomplete") == "new-password",
		Invalid:     q.Get("invalid") == "true",
	}
}

func (p PasswordFieldProps) autocomplete() string {
	if p.NewPassword {
		return "new-password"
	}
	return "current-password"
}

// toggleURL asks for the same field with the opposite visibility.
func (p PasswordFieldProps) toggleURL() string {
	q := url.Values{"visible": {strconv.FormatBool(!p.Visible)}}
	if p.NewPassword {
		q.Set("autocomplete", "new-password")
	}
	if p.Invalid {
		q.Set("invalid", "true")
	}
	return PasswordFieldPath + "?" + q.Encode()
}

// PasswordField renders the password input with a show/hide toggle. The
// toggle posts the current value back and swaps in the field rendered with
// the opposite visibility, so the typed password survives the swap.
func PasswordField(p PasswordFieldProps) cmp.Node {
	inputType, toggleLabel, toggleIcon := "password", "Show password", "eye"
	if p.Visible {
		inputType, toggleLabel, toggleIcon = "text", "Hide password", "eye-off"
	}

	return g.Div(
		g.ID(PasswordFieldID),
		g.Class("relative"),
		g.Input(
			g.ID("password"),
			g.Name("password"),
			g.Type(inputType),
			g.Value(p.Value),
			g.Placeholder("••••••••"),
			cmp.Attr("autocomplete", p.autocomplete()),
			inputClass(p.Invalid),
		),
		g.Button(
			g.Type("button"),
			g.Class("absolute right-3 top-1/2 -translate-y-1/2 text-slate-400 hover:text-slate-700"),
			g.Aria("label", toggleLabel),
			cmp.Attr("data-visible", strconv.FormatBool(p.Visible)),
			hx.Post(p.toggleURL()),
			hx.Target("#"+PasswordFieldID),
			hx.Swap("outerHTML"),
			hx.Include("#password"),
			Icon(toggleIcon, "w-5 h-5"),
		),
	)
}

// FieldError renders the message shown under an invalid input.
func FieldError(id, msg string) cmp.Node {
	return cmp.If(msg != "",
		g.P(g.ID(id+"-error"), g.Class("mt-1 text-sm text-red-600"), cmp.Text(msg)),
	)
}

func inputClass(invalid bool) cmp.Node {
	base := "w-full h-12 rounded-lg border bg-white px-3 pr-10 text-sm focus:outline-none focus:ring-2 "
	if invalid {
		return g.Class(base + "border-red-400 focus:ring-red-300")
	}
	return g.Class(base + "border-slate-300 focus:ring-teal-300")
}
