package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestProductImageCleanupHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("subscribes to ProductDeleted", func(t *testing.T) {
		h := NewProductImageCleanupHandler(new(MockImageStorage), zap.NewNop())
		assert.Equal(t, []string{catalog.EventTypeProductDeleted}, h.EventTypes())
	})

	t.Run("deletes the image", func(t *testing.T) {
		images := new(MockImageStorage)
		h := NewProductImageCleanupHandler(images, zap.NewNop())
		product := newTestProduct("Lamp", "20")
		product.ImageKey = "products/lamp.png"
		images.On("DeleteObject", ctx, "products/lamp.png").Return(nil)

		assert.NoError(t, h.Handle(ctx, catalog.NewProductDeletedEvent(product)))
		images.AssertExpectations(t)
	})

	t.Run("no image", func(t *testing.T) {
		images := new(MockImageStorage)
		h := NewProductImageCleanupHandler(images, zap.NewNop())

		assert.NoError(t, h.Handle(ctx, catalog.NewProductDeletedEvent(newTestProduct("Lamp", "20"))))
		images.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		images := new(MockImageStorage)
		h := NewProductImageCleanupHandler(images, zap.NewNop())
		product := newTestProduct("Lamp", "20")
		product.ImageKey = "k"
		images.On("DeleteObject", ctx, "k").Return(errors.New("boom"))

		assert.Error(t, h.Handle(ctx, catalog.NewProductDeletedEvent(product)))
	})

	t.Run("ignores other events", func(t *testing.T) {
		images := new(MockImageStorage)
		h := NewProductImageCleanupHandler(images, zap.NewNop())

		assert.NoError(t, h.Handle(ctx, catalog.NewProductCreatedEvent(newTestProduct("Lamp", "20"))))
		images.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	})
}
