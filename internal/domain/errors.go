package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the failures the auth screens and dashboard react to.
var (
	// ErrInvalidCredentials indicates a sign-in attempt failed due to an
	// incorrect email or password combination.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyRegistered indicates a sign-up attempt failed because the
	// email address is already registered with the identity provider.
	ErrAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidToken is returned when a session token is malformed, expired,
	// revoked or issued for another namespace or access method.
	ErrInvalidToken = errors.New("invalid or expired session token")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("requested resource not found")
)
