package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/vintechs/portal/internal/domain"
)

// signingMethod matches the algorithm declared on the SurrealDB access method
// (`WITH JWT ALGORITHM HS512`).
var signingMethod = jwt.SigningMethodHS512

// Claims mirrors the claim set SurrealDB puts into record access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Namespace string `json:"NS,omitempty"`
	Database  string `json:"DB,omitempty"`
	Access    string `json:"AC,omitempty"`
	Record    string `json:"ID,omitempty"`
}

// Scope pins tokens to one namespace, database and access method. Empty
// fields are not checked.
type Scope struct {
	Namespace string
	Database  string
	Access    string
}

// TokenVerifier validates session tokens locally with the shared HS512 key,
// so a request never has to re-authenticate a database connection.
type TokenVerifier struct {
	secret []byte
	scope  Scope
	now    func() time.Time
}

// NewTokenVerifier creates a verifier for tokens signed with secret.
func NewTokenVerifier(secret []byte, scope Scope) *TokenVerifier {
	return &TokenVerifier{secret: secret, scope: scope, now: time.Now}
}

// Verify parses and validates token. Every failure is reported as
// domain.ErrInvalidToken, wrapping the underlying reason.
func (v *TokenVerifier) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if err := v.checkScope(claims); err != nil {
		return nil, err
	}
	if _, err := ParseRecordID(claims.Record); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return claims, nil
}

func (v *TokenVerifier) checkScope(c *Claims) error {
	mismatch := func(name, want, got string) error {
		return fmt.Errorf("%w: %s mismatch (want %q, got %q)", domain.ErrInvalidToken, name, want, got)
	}
	if v.scope.Namespace != "" && c.Namespace != v.scope.Namespace {
		return mismatch("namespace", v.scope.Namespace, c.Namespace)
	}
	if v.scope.Database != "" && c.Database != v.scope.Database {
		return mismatch("database", v.scope.Database, c.Database)
	}
	if v.scope.Access != "" && c.Access != v.scope.Access {
		return mismatch("access", v.scope.Access, c.Access)
	}
	return nil
}

// TokenIssuer mints tokens with the same claims SurrealDB would issue.
type TokenIssuer struct {
	secret []byte
	scope  Scope
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer whose tokens live for ttl.
func NewTokenIssuer(secret []byte, scope Scope, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, scope: scope, ttl: ttl, now: time.Now}
}

// Issue signs a token for the given record.
func (i *TokenIssuer) Issue(id surrealmodels.RecordID) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "SurrealDB",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Namespace: i.scope.Namespace,
		Database:  i.scope.Database,
		Access:    i.scope.Access,
		Record:    FormatRecordID(id),
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseRecordID converts "table:id" into a RecordID. SurrealDB may wrap
// complex ids in ⟨⟩ or backticks; both are stripped.
func ParseRecordID(s string) (surrealmodels.RecordID, error) {
	table, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || table == "" {
		return surrealmodels.RecordID{}, fmt.Errorf("malformed record id %q", s)
	}
	id = strings.TrimPrefix(strings.TrimSuffix(id, "⟩"), "⟨")
	id = strings.Trim(id, "`")
	if id == "" {
		return surrealmodels.RecordID{}, errors.New("record id has no key")
	}
	return surrealmodels.NewRecordID(table, id), nil
}

// FormatRecordID renders a RecordID as "table:id".
func FormatRecordID(id surrealmodels.RecordID) string {
	return fmt.Sprintf("%s:%v", id.Table, id.ID)
}
