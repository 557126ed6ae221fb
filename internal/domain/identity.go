package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Identity is the authenticated visitor attached to a request.
type Identity struct {
	ID    *surrealmodels.RecordID
	Email string
}

// Credentials are the values submitted on the sign-in form.
type Credentials struct {
	Email    string
	Password string
}

// Registration carries the sign-up form values handed to the provider.
type Registration struct {
	Credentials
	FirstName string
	LastName  string
}

// IdentityProvider is the external service of record for credentials. It
// lives in the domain because the auth screens depend on the contract, not
// on SurrealDB or the in-memory implementation behind it.
type IdentityProvider interface {
	// SignIn returns a session token, or ErrInvalidCredentials.
	SignIn(ctx context.Context, creds Credentials) (string, error)
	// SignUp creates the account and returns a session token, or ErrAlreadyRegistered.
	SignUp(ctx context.Context, reg Registration) (string, error)
	// SignOut ends the session identified by token.
	SignOut(ctx context.Context, token string) error
	// Verify resolves a session token to an identity, or ErrInvalidToken.
	Verify(ctx context.Context, token string) (*Identity, error)
}
