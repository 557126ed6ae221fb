package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestProfileDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		want    string
	}{
		{"nil profile falls back to email", nil, "john@example.com"},
		{"empty profile falls back to email", &Profile{}, "john@example.com"},
		{"both names", &Profile{FirstName: strPtr("John"), LastName: strPtr("Doe")}, "John Doe"},
		{"first name only", &Profile{FirstName: strPtr("John")}, "John"},
		{"last name only", &Profile{LastName: strPtr("Doe")}, "Doe"},
		{"blank names fall back", &Profile{FirstName: strPtr("  "), LastName: strPtr("")}, "john@example.com"},
		{"names are trimmed", &Profile{FirstName: strPtr(" John "), LastName: strPtr(" Doe")}, "John Doe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName("john@example.com"))
		})
	}
}

func TestProfileInitials(t *testing.T) {
	tests := []struct {
		name     string
		profile  *Profile
		fallback string
		want     string
	}{
		{"both names", &Profile{FirstName: strPtr("john"), LastName: strPtr("doe")}, "x@example.com", "JD"},
		{"first name only", &Profile{FirstName: strPtr("Wanjiru")}, "x@example.com", "W"},
		{"nil profile uses email", nil, "john@example.com", "J"},
		{"nothing known", nil, "", "?"},
		{"unicode names", &Profile{FirstName: strPtr("éva"), LastName: strPtr("Öz")}, "", "ÉÖ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.Initials(tt.fallback))
		})
	}
}

func TestProfileContactEmail(t *testing.T) {
	assert.Equal(t, "fallback@example.com", (*Profile)(nil).ContactEmail("fallback@example.com"))
	assert.Equal(t, "stored@example.com", (&Profile{Email: strPtr("stored@example.com")}).ContactEmail("fallback@example.com"))
}
