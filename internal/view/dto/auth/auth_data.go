package auth

// Mode selects which form the auth page shows.
type Mode string

const (
	ModeSignIn Mode = "signin"
	ModeSignUp Mode = "signup"
)

// FormValues are the values echoed back into the form. The password is
// never among them.
type FormValues struct {
	FirstName string
	LastName  string
	Email     string
}

// PageData is the view model for the sign-in and sign-up screens.
type PageData struct {
	Mode     Mode
	AppName  string
	Benefits []string
	Values   FormValues
	// Errors maps a form field name to the message shown under it.
	Errors map[string]string
}

// IsSignUp reports whether the sign-up form is shown.
func (d PageData) IsSignUp() bool {
	return d.Mode == ModeSignUp
}

// Error returns the message for field, or "".
func (d PageData) Error(field string) string {
	return d.Errors[field]
}
