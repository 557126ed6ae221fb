package auth

import (
	"errors"
	"strings"

	"github.com/vintechs/portal/internal/domain"
)

// User-facing texts for failed sign-in and sign-up attempts.
const (
	MsgInvalidCredentials = "Invalid email or password. Please try again."
	MsgAlreadyRegistered  = "This email is already registered. Please log in instead."
	MsgUnexpected         = "An unexpected error occurred. Please try again."
)

// FriendlyMessage maps a provider error to the notification shown on the form.
// Known sentinel errors are matched first, then the provider's raw text, so a
// backend that returns plain messages is still recognised.
func FriendlyMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return MsgAlreadyRegistered
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "invalid login credentials"), strings.Contains(text, "invalid credentials"):
		return MsgInvalidCredentials
	case strings.Contains(text, "already registered"):
		return MsgAlreadyRegistered
	default:
		return MsgUnexpected
	}
}
