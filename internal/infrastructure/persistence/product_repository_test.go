package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := createProduct(t, db, "Café Mug", "12.50", 4)
	assert.True(t, p.IsPersisted())

	bySlug, err := repo.FindBySlug(ctx, "cafe-mug")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)
	assert.True(t, bySlug.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 4, bySlug.Stock)
	assert.True(t, bySlug.IsAvailable)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	exists, err := repo.ExistsBySlug(ctx, "cafe-mug")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormProductRepository_DuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	createProduct(t, db, "Lamp", "10.00", 1)

	dup, err := catalog.NewProduct("Lamp", "", decimal.NewFromInt(5))
	require.NoError(t, err)
	err = NewGormProductRepository(db).Save(context.Background(), dup)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormProductRepository_OptimisticUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	p := createProduct(t, db, "Desk", "99.00", 2)

	first, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, first.SetPrice(decimal.NewFromInt(120)))
	require.NoError(t, first.SetStock(5))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.SetStock(9))
	assert.ErrorIs(t, repo.Save(ctx, second), shared.ErrConcurrencyConflict)

	stored, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)
	assert.Equal(t, first.GetVersion(), stored.GetVersion())
}

func TestGormProductRepository_FindAllFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	category, err := catalog.NewCategory("Kitchen", "", "")
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(ctx, category))

	kettle := createProduct(t, db, "Kettle", "30.00", 3)
	kettle.SetCategory(&category.ID)
	kettle.Description = "Boils water fast"
	require.NoError(t, repo.Save(ctx, kettle))

	hidden := createProduct(t, db, "Blender", "45.00", 1)
	hidden.SetAvailability(false)
	require.NoError(t, repo.Save(ctx, hidden))

	createProduct(t, db, "Apron 100%", "8.00", 10)

	available := shared.Filter{Page: 1, PageSize: 10, Filters: map[string]any{catalog.FilterAvailable: true}}
	products, err := repo.FindAll(ctx, available)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Apron 100%", products[0].Name, "ordered by name")

	count, err := repo.Count(ctx, available)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	t.Run("search matches description case-insensitively", func(t *testing.T) {
		f := available
		f.Search = "WATER"
		found, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, kettle.ID, found[0].ID)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		f := available
		f.Search = "%"
		found, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Apron 100%", found[0].Name)
	})

	t.Run("category filter", func(t *testing.T) {
		f := shared.Filter{Filters: map[string]any{catalog.FilterCategoryID: category.ID}}
		found, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Kettle", found[0].Name)
	})

	t.Run("created range", func(t *testing.T) {
		f := shared.Filter{Filters: map[string]any{catalog.FilterCreatedFrom: time.Now().Add(time.Hour)}}
		found, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("pagination", func(t *testing.T) {
		found, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})
}

func TestGormProductRepository_Stock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	p := createProduct(t, db, "Chair", "40.00", 3)

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 2))
	assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, 2), shared.ErrInsufficientStock)
	assert.ErrorIs(t, repo.DecrementStock(ctx, uuid.New(), 1), shared.ErrNotFound)
	assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, 0), shared.ErrInvalidInput)

	require.NoError(t, repo.IncrementStock(ctx, p.ID, 4))
	assert.ErrorIs(t, repo.IncrementStock(ctx, uuid.New(), 1), shared.ErrNotFound)

	stored, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)
}

func TestGormProductRepository_FindByIDsAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	a := createProduct(t, db, "A", "1.00", 1)
	b := createProduct(t, db, "B", "2.00", 1)

	found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), shared.ErrNotFound)
}
