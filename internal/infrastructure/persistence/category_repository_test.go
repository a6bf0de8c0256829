package persistence

import (
	"context"
	"testing"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	toys, err := catalog.NewCategory("Toys", "", "Fun")
	require.NoError(t, err)
	books, err := catalog.NewCategory("Books", "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, toys))
	require.NoError(t, repo.Save(ctx, books))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Books", all[0].Name)

	require.NoError(t, toys.Update("Toys & Games", "toys-games", "More fun"))
	require.NoError(t, repo.Save(ctx, toys))
	found, err := repo.FindBySlug(ctx, "toys-games")
	require.NoError(t, err)
	assert.Equal(t, "More fun", found.Description)

	exists, err := repo.ExistsBySlug(ctx, "toys")
	require.NoError(t, err)
	assert.False(t, exists)

	t.Run("duplicate slug", func(t *testing.T) {
		dup, err := catalog.NewCategory("Books", "", "")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("delete detaches products", func(t *testing.T) {
		p := createProduct(t, db, "Puzzle", "15.00", 2)
		p.SetCategory(&toys.ID)
		require.NoError(t, NewGormProductRepository(db).Save(ctx, p))

		require.NoError(t, repo.Delete(ctx, toys.ID))
		assert.ErrorIs(t, repo.Delete(ctx, toys.ID), shared.ErrNotFound)

		stored, err := NewGormProductRepository(db).FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.CategoryID)
	})
}
