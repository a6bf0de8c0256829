package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates available product with default stock", func(t *testing.T) {
		product, err := NewProduct("Blue Mug", "", decimal.RequireFromString("12.50"))
		require.NoError(t, err)

		assert.Equal(t, "Blue Mug", product.Name)
		assert.Equal(t, "blue-mug", product.Slug)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("12.5")))
		assert.Equal(t, DefaultProductStock, product.Stock)
		assert.True(t, product.IsAvailable)
		assert.Nil(t, product.CategoryID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("keeps explicit slug", func(t *testing.T) {
		product, err := NewProduct("Blue Mug", "mug-blue", decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.Equal(t, "mug-blue", product.Slug)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("Tea", "", decimal.NewFromInt(4))
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, "tea", event.Slug)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "x", decimal.NewFromInt(1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("rejects price above column precision", func(t *testing.T) {
		_, err := NewProduct("Gold", "", decimal.NewFromInt(10000))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})

	t.Run("rejects more than two decimals", func(t *testing.T) {
		_, err := NewProduct("Gum", "", decimal.RequireFromString("0.125"))
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Gum", "", decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestProduct_SetPrice(t *testing.T) {
	product, err := NewProduct("Lamp", "", decimal.NewFromInt(20))
	require.NoError(t, err)
	product.ClearDomainEvents()

	require.NoError(t, product.SetPrice(decimal.NewFromInt(25)))
	assert.Equal(t, 2, product.GetVersion())

	events := product.GetDomainEvents()
	require.Len(t, events, 1)
	changed := events[0].(*ProductPriceChangedEvent)
	assert.True(t, changed.OldPrice.Equal(decimal.NewFromInt(20)))
	assert.True(t, changed.NewPrice.Equal(decimal.NewFromInt(25)))

	t.Run("same price is a no-op", func(t *testing.T) {
		product.ClearDomainEvents()
		require.NoError(t, product.SetPrice(decimal.NewFromInt(25)))
		assert.Empty(t, product.GetDomainEvents())
		assert.Equal(t, 2, product.GetVersion())
	})
}

func TestProduct_Stock(t *testing.T) {
	product, err := NewProduct("Chair", "", decimal.NewFromInt(40))
	require.NoError(t, err)

	require.NoError(t, product.SetStock(3))
	assert.True(t, product.InStock())
	assert.True(t, product.CanSupply(3))
	assert.False(t, product.CanSupply(4))
	assert.False(t, product.CanSupply(0))

	require.NoError(t, product.SetStock(0))
	assert.False(t, product.InStock())

	assert.Error(t, product.SetStock(-1))
}

func TestProduct_LineTotal(t *testing.T) {
	product, err := NewProduct("Pen", "", decimal.RequireFromString("1.99"))
	require.NoError(t, err)
	assert.Equal(t, "5.97", product.LineTotal(3).StringFixed(2))
}

func TestProduct_SetCategory(t *testing.T) {
	product, err := NewProduct("Pen", "", decimal.NewFromInt(1))
	require.NoError(t, err)

	id := uuid.New()
	product.SetCategory(&id)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, id, *product.CategoryID)

	product.SetCategory(nil)
	assert.Nil(t, product.CategoryID)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blue Mug", "blue-mug"},
		{"  Crème Brûlée!! ", "creme-brulee"},
		{"100% Cotton -- T-Shirt", "100-cotton-t-shirt"},
		{"Ærø", "r"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNewCategory(t *testing.T) {
	category, err := NewCategory("Home & Garden", "", "Things for the house")
	require.NoError(t, err)
	assert.Equal(t, "home-garden", category.Slug)

	_, err = NewCategory("", "x", "")
	assert.Error(t, err)

	_, err = NewCategory("Bad", "Not A Slug", "")
	assert.Error(t, err)
}
