package validation

import "strings"

// SignInForm is the payload of POST /auth/login.
type SignInForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

// Normalize trims the email. Passwords are taken verbatim.
func (f *SignInForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// SignUpForm is the payload of POST /auth/signup.
type SignUpForm struct {
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=8"`
}

// Normalize trims names and email so whitespace-only names fail "required".
func (f *SignUpForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
}
