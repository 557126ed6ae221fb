package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/surrealdb/surrealdb.go"
	"github.com/vintechs/portal/internal/auth"
	"github.com/vintechs/portal/internal/domain"
)

// SurrealIdentityProvider authenticates users against a SurrealDB record
// access method. SignIn and SignUp change the authentication state of the
// connection they run on, so they get a connection of their own which is
// used by one call at a time and invalidated afterwards. Tokens are verified
// locally and never touch the shared root connection.
type SurrealIdentityProvider struct {
	mu       sync.Mutex
	conn     *surrealdb.DB
	ns       string
	dbName   string
	access   string
	verifier *auth.TokenVerifier
}

// NewSurrealIdentityProvider creates a provider on a dedicated connection.
// The connection must not be signed in as root.
func NewSurrealIdentityProvider(conn *surrealdb.DB, ns, dbName, access string, verifier *auth.TokenVerifier) *SurrealIdentityProvider {
	return &SurrealIdentityProvider{
		conn:     conn,
		ns:       ns,
		dbName:   dbName,
		access:   access,
		verifier: verifier,
	}
}

// SignUp creates the user through the access method's SIGNUP clause.
func (p *SurrealIdentityProvider) SignUp(ctx context.Context, reg domain.Registration) (string, error) {
	vars := p.vars(reg.Email, reg.Password)
	vars["firstName"] = reg.FirstName
	vars["lastName"] = reg.LastName

	token, err := p.withAccessConn(ctx, func() (string, error) {
		return p.conn.SignUp(ctx, vars)
	})
	if err != nil {
		return "", mapSignUpError(err)
	}

	slog.InfoContext(ctx, "Successfully signed up user", "email", reg.Email)
	return token, nil
}

// SignIn exchanges credentials for a token through the SIGNIN clause.
func (p *SurrealIdentityProvider) SignIn(ctx context.Context, creds domain.Credentials) (string, error) {
	token, err := p.withAccessConn(ctx, func() (string, error) {
		return p.conn.SignIn(ctx, p.vars(creds.Email, creds.Password))
	})
	if err != nil {
		return "", mapSignInError(err)
	}

	slog.InfoContext(ctx, "Successfully signed in user", "email", creds.Email)
	return token, nil
}

// SignOut checks the token with the server and then drops the session it
// opened. SurrealDB tokens are stateless, so the token itself stays valid
// until it expires; the caller is expected to discard it.
func (p *SurrealIdentityProvider) SignOut(ctx context.Context, token string) error {
	if _, err := p.verifier.Verify(token); err != nil {
		return err
	}
	_, err := p.withAccessConn(ctx, func() (string, error) {
		return "", p.conn.Authenticate(ctx, token)
	})
	if err != nil && !isConnectionError(err) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return err
}

// Verify resolves a token to the record it was issued for. The email is not
// part of SurrealDB's claims and is left empty.
func (p *SurrealIdentityProvider) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := p.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	id, err := auth.ParseRecordID(claims.Record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return &domain.Identity{ID: &id}, nil
}

func (p *SurrealIdentityProvider) vars(email, password string) map[string]any {
	return map[string]any{
		"ns":       p.ns,
		"db":       p.dbName,
		"ac":       p.access,
		"email":    strings.ToLower(strings.TrimSpace(email)),
		"password": password,
	}
}

// withAccessConn serialises use of the access connection and resets it so
// the next caller starts unauthenticated.
func (p *SurrealIdentityProvider) withAccessConn(ctx context.Context, fn func() (string, error)) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	defer func() {
		if err := p.conn.Invalidate(context.WithoutCancel(ctx)); err != nil {
			slog.WarnContext(ctx, "Failed to invalidate access connection", "error", err)
		}
	}()
	return fn()
}

// Close closes the access connection.
func (p *SurrealIdentityProvider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.Close(ctx)
}

func mapSignUpError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"already exists", "already contains", "already registered"} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", domain.ErrAlreadyRegistered, err)
		}
	}
	return fmt.Errorf("sign up failed: %w", err)
}

// signInFailureMarkers are what SurrealDB answers when the SIGNIN clause
// finds no matching user or the password check fails. It does not say which,
// and neither do we.
var signInFailureMarkers = []string{
	"problem with authentication",
	"no record was returned",
	"invalid authentication",
}

// mapSignInError reports credential failures as ErrInvalidCredentials.
// Anything else, such as a missing access method or namespace, is an
// operator fault and stays a plain error.
func mapSignInError(err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("sign in failed: %w", err)
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range signInFailureMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
		}
	}
	return fmt.Errorf("sign in failed: %w", err)
}
