package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/vintechs/portal/internal/config"
	"github.com/vintechs/portal/internal/domain"
)

// ConfigForTests returns a valid configuration for the in-memory identity
// provider. Values from .env.test at the project root are applied first
// when that file exists.
func ConfigForTests(t *testing.T) *config.Config {
	t.Helper()

	if root, ok := projectRoot(); ok {
		if env, err := godotenv.Read(filepath.Join(root, ".env.test")); err == nil {
			for key, value := range env {
				t.Setenv(key, value)
			}
		}
	}

	t.Setenv("AUTH_PROVIDER", config.AuthProviderMemory)
	t.Setenv("EMAIL_PROVIDER", "log")
	t.Setenv("CATALOG_PATH", "")
	setDefault(t, "SESSION_SECRET", "a-very-secret-key-for-testing-!")
	setDefault(t, "AUTH_TOKEN_SECRET", "token-secret-for-tests-only-0123456789")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("failed to build test config: %v", err)
	}
	return cfg
}

// UserIdentity returns an identity for a fresh user record, as a verified
// session token would resolve to.
func UserIdentity(email string) *domain.Identity {
	id := surrealmodels.NewRecordID("user", uuid.NewString())
	return &domain.Identity{ID: &id, Email: email}
}

func setDefault(t *testing.T, key, value string) {
	if os.Getenv(key) == "" {
		t.Setenv(key, value)
	}
}

// projectRoot walks up from the working directory to the go.mod.
func projectRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}
