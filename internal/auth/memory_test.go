package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/vintechs/portal/internal/domain"
)

func newTestProvider() *MemoryProvider {
	return NewMemoryProvider(testSecret, testScope, time.Hour)
}

func johnDoe() domain.Registration {
	return domain.Registration{
		Credentials: domain.Credentials{Email: "John@Example.com", Password: "a-secure-password-123"},
		FirstName:   "John",
		LastName:    "Doe",
	}
}

func TestMemoryProvider_SignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	token, err := p.SignUp(ctx, johnDoe())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := p.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", identity.Email, "emails are normalised")
	require.NotNil(t, identity.ID)
	assert.Equal(t, "user", identity.ID.Table)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		reg := johnDoe()
		reg.Email = "  john@example.com "
		_, err := p.SignUp(ctx, reg)
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	})

	t.Run("sign in with correct password", func(t *testing.T) {
		token, err := p.SignIn(ctx, domain.Credentials{Email: "john@example.com", Password: "a-secure-password-123"})
		require.NoError(t, err)
		_, err = p.Verify(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("sign in with wrong password", func(t *testing.T) {
		_, err := p.SignIn(ctx, domain.Credentials{Email: "john@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("sign in with unknown email", func(t *testing.T) {
		_, err := p.SignIn(ctx, domain.Credentials{Email: "nobody@example.com", Password: "a-secure-password-123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestMemoryProvider_SignOut(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	token, err := p.SignUp(ctx, johnDoe())
	require.NoError(t, err)

	require.NoError(t, p.SignOut(ctx, token))

	_, err = p.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "signed-out tokens no longer verify")

	err = p.SignOut(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestMemoryProvider_FindProfileByID(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	token, err := p.SignUp(ctx, johnDoe())
	require.NoError(t, err)
	identity, err := p.Verify(ctx, token)
	require.NoError(t, err)

	profile, err := p.FindProfileByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", profile.DisplayName(""))
	assert.Equal(t, "JD", profile.Initials(""))
	assert.Equal(t, "john@example.com", profile.ContactEmail(""))

	t.Run("unknown id", func(t *testing.T) {
		unknown := surrealmodels.NewRecordID("user", "missing")
		_, err := p.FindProfileByID(ctx, &unknown)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("nil id", func(t *testing.T) {
		_, err := p.FindProfileByID(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMemoryProvider_ConcurrentSignUps(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	const attempts = 3
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.SignUp(ctx, johnDoe())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, duplicates int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			duplicates++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, duplicates)
}
