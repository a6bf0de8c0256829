package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	ada := createUser(t, db, "Ada")

	found, err := repo.FindByUsername(ctx, "ADA")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, found.ID)
	assert.Equal(t, "ada", found.Username)

	taken, err := repo.ExistsByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.True(t, taken)

	t.Run("email uniqueness excludes self", func(t *testing.T) {
		used, err := repo.ExistsByEmail(ctx, "ADA@example.com", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, used)

		used, err = repo.ExistsByEmail(ctx, "ada@example.com", ada.ID)
		require.NoError(t, err)
		assert.False(t, used)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup, err := identity.NewUser("ada", "other@example.com", "secret123")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("update is versioned", func(t *testing.T) {
		a, err := repo.FindByID(ctx, ada.ID)
		require.NoError(t, err)
		b, err := repo.FindByID(ctx, ada.ID)
		require.NoError(t, err)

		require.NoError(t, a.UpdateProfile("Ada", "Lovelace", "ada@example.com"))
		require.NoError(t, repo.Update(ctx, a))

		require.NoError(t, b.UpdateProfile("X", "Y", "ada@example.com"))
		assert.ErrorIs(t, repo.Update(ctx, b), shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lovelace", stored.LastName)
	})

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
