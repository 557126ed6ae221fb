package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/vintechs/portal/internal/domain"
	"golang.org/x/crypto/argon2"
)

const (
	userTable  = "user"
	saltLength = 16
)

type memoryUser struct {
	id        surrealmodels.RecordID
	email     string
	firstName string
	lastName  string
	salt      []byte
	hash      []byte
}

// MemoryProvider is an in-process identity provider and profile repository.
// It issues the same tokens as the SurrealDB access method, which makes it a
// drop-in backend for local development and handler tests.
type MemoryProvider struct {
	mu       sync.RWMutex
	byEmail  map[string]*memoryUser
	byKey    map[string]*memoryUser
	revoked  map[string]time.Time
	issuer   *TokenIssuer
	verifier *TokenVerifier
}

// NewMemoryProvider creates an empty provider signing tokens with secret.
func NewMemoryProvider(secret []byte, scope Scope, ttl time.Duration) *MemoryProvider {
	return &MemoryProvider{
		byEmail:  make(map[string]*memoryUser),
		byKey:    make(map[string]*memoryUser),
		revoked:  make(map[string]time.Time),
		issuer:   NewTokenIssuer(secret, scope, ttl),
		verifier: NewTokenVerifier(secret, scope),
	}
}

// SignUp registers a new account and signs it in.
func (p *MemoryProvider) SignUp(ctx context.Context, reg domain.Registration) (string, error) {
	email := normalizeEmail(reg.Email)

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	user := &memoryUser{
		id:        surrealmodels.NewRecordID(userTable, uuid.NewString()),
		email:     email,
		firstName: strings.TrimSpace(reg.FirstName),
		lastName:  strings.TrimSpace(reg.LastName),
		salt:      salt,
		hash:      hashPassword(reg.Password, salt),
	}

	p.mu.Lock()
	if _, exists := p.byEmail[email]; exists {
		p.mu.Unlock()
		return "", domain.ErrAlreadyRegistered
	}
	p.byEmail[email] = user
	p.byKey[FormatRecordID(user.id)] = user
	p.mu.Unlock()

	slog.InfoContext(ctx, "Registered user", "user_id", FormatRecordID(user.id))
	return p.issuer.Issue(user.id)
}

// SignIn checks the password and returns a fresh token.
func (p *MemoryProvider) SignIn(ctx context.Context, creds domain.Credentials) (string, error) {
	p.mu.RLock()
	user, ok := p.byEmail[normalizeEmail(creds.Email)]
	p.mu.RUnlock()

	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare(hashPassword(creds.Password, user.salt), user.hash) != 1 {
		return "", domain.ErrInvalidCredentials
	}
	return p.issuer.Issue(user.id)
}

// SignOut revokes the token until it would have expired anyway.
func (p *MemoryProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.verifier.Verify(token)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pruneRevokedLocked(time.Now())
	p.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

// Verify resolves a token to the identity it was issued for.
func (p *MemoryProvider) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := p.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, revoked := p.revoked[claims.ID]; revoked {
		return nil, fmt.Errorf("%w: token revoked", domain.ErrInvalidToken)
	}
	user, ok := p.byKey[claims.Record]
	if !ok {
		return nil, fmt.Errorf("%w: unknown user", domain.ErrInvalidToken)
	}

	id := user.id
	return &domain.Identity{ID: &id, Email: user.email}, nil
}

// FindProfileByID implements domain.ProfileRepository.
func (p *MemoryProvider) FindProfileByID(ctx context.Context, id *surrealmodels.RecordID) (*domain.Profile, error) {
	if id == nil {
		return nil, domain.ErrNotFound
	}

	p.mu.RLock()
	user, ok := p.byKey[FormatRecordID(*id)]
	p.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	recordID := user.id
	profile := &domain.Profile{ID: &recordID, Email: optional(user.email)}
	profile.FirstName = optional(user.firstName)
	profile.LastName = optional(user.lastName)
	return profile, nil
}

func (p *MemoryProvider) pruneRevokedLocked(now time.Time) {
	for jti, expires := range p.revoked {
		if now.After(expires) {
			delete(p.revoked, jti)
		}
	}
}

// hashPassword derives an argon2id key with the parameters recommended for
// interactive logins.
func hashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
