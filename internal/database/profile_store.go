package database

import (
	"context"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/vintechs/portal/internal/domain"
)

const profileQuery = "SELECT id, firstName, lastName, email FROM $id"

// ProfileStore reads user profiles over the shared root connection.
type ProfileStore struct {
	db      *surrealdb.DB
	timeout time.Duration
}

// NewProfileStore creates a ProfileStore. A zero timeout disables the
// per-query deadline.
func NewProfileStore(db *surrealdb.DB, timeout time.Duration) *ProfileStore {
	return &ProfileStore{db: db, timeout: timeout}
}

// FindProfileByID implements domain.ProfileRepository.
func (s *ProfileStore) FindProfileByID(ctx context.Context, id *surrealmodels.RecordID) (*domain.Profile, error) {
	if id == nil {
		return nil, domain.ErrNotFound
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	profile, err := QueryOne[domain.Profile](ctx, s.db, profileQuery, map[string]any{"id": *id})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}
