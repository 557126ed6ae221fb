package domain

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Profile is the subset of a user's identity record shown on the dashboard.
// Every field is optional: the record is owned by the identity provider and
// may have been created without names.
type Profile struct {
	ID        *surrealmodels.RecordID `json:"id,omitempty"`
	FirstName *string                 `json:"firstName,omitempty"`
	LastName  *string                 `json:"lastName,omitempty"`
	Email     *string                 `json:"email,omitempty"`
}

// ProfileRepository reads profiles from the external store.
type ProfileRepository interface {
	// FindProfileByID returns ErrNotFound when no record exists for id.
	FindProfileByID(ctx context.Context, id *surrealmodels.RecordID) (*Profile, error)
}

// DisplayName returns "First Last" built from the non-blank name parts, or
// fallbackEmail when the profile is nil or carries no name.
func (p *Profile) DisplayName(fallbackEmail string) string {
	if p != nil {
		parts := make([]string, 0, 2)
		for _, s := range []*string{p.FirstName, p.LastName} {
			if v := trimmed(s); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return fallbackEmail
}

// Initials returns up to two uppercase letters for the avatar. Names win over
// the email; "?" is returned when nothing is known.
func (p *Profile) Initials(fallbackEmail string) string {
	var b strings.Builder
	if p != nil {
		for _, s := range []*string{p.FirstName, p.LastName} {
			if r, ok := firstRune(trimmed(s)); ok {
				b.WriteRune(unicode.ToUpper(r))
			}
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	if r, ok := firstRune(strings.TrimSpace(fallbackEmail)); ok {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// ContactEmail prefers the email stored on the profile over fallbackEmail.
func (p *Profile) ContactEmail(fallbackEmail string) string {
	if p != nil {
		if v := trimmed(p.Email); v != "" {
			return v
		}
	}
	return fallbackEmail
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, r != utf8.RuneError
}
