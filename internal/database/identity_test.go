package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/vintechs/portal/internal/auth"
	"github.com/vintechs/portal/internal/domain"
)

func TestSurrealIdentityProvider_Verify(t *testing.T) {
	secret := []byte("test-secret-with-enough-length-for-hs512")
	scope := auth.Scope{Namespace: "vintechs", Database: "portal", Access: "account"}

	// Verify never touches the connection.
	p := NewSurrealIdentityProvider(nil, scope.Namespace, scope.Database, scope.Access, auth.NewTokenVerifier(secret, scope))

	token, err := auth.NewTokenIssuer(secret, scope, time.Hour).Issue(surrealmodels.NewRecordID("user", "abc123"))
	require.NoError(t, err)

	identity, err := p.Verify(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, identity.ID)
	assert.Equal(t, "user", identity.ID.Table)
	assert.Equal(t, "abc123", identity.ID.ID)
	assert.Empty(t, identity.Email)

	t.Run("other access method", func(t *testing.T) {
		other := auth.Scope{Namespace: "vintechs", Database: "portal", Access: "admin"}
		token, err := auth.NewTokenIssuer(secret, other, time.Hour).Issue(surrealmodels.NewRecordID("user", "abc123"))
		require.NoError(t, err)

		_, err = p.Verify(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := p.Verify(context.Background(), "garbage")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
