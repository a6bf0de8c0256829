package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductImageCleanupHandler deletes the stored image of a deleted product
type ProductImageCleanupHandler struct {
	images ImageStorage
	logger *zap.Logger
}

// NewProductImageCleanupHandler creates a new ProductImageCleanupHandler
func NewProductImageCleanupHandler(images ImageStorage, logger *zap.Logger) *ProductImageCleanupHandler {
	return &ProductImageCleanupHandler{images: images, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *ProductImageCleanupHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductDeleted}
}

// Handle processes a ProductDeleted event
func (h *ProductImageCleanupHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	deleted, ok := event.(*catalog.ProductDeletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", catalog.EventTypeProductDeleted),
			zap.String("actual", event.EventType()))
		return nil
	}
	if deleted.ImageKey == "" {
		return nil
	}

	if err := h.images.DeleteObject(ctx, deleted.ImageKey); err != nil {
		h.logger.Error("failed to delete image of deleted product",
			zap.String("product_id", deleted.ProductID.String()),
			zap.String("key", deleted.ImageKey),
			zap.Error(err))
		return err
	}
	h.logger.Info("deleted image of deleted product",
		zap.String("product_id", deleted.ProductID.String()),
		zap.String("key", deleted.ImageKey))
	return nil
}

var _ shared.EventHandler = (*ProductImageCleanupHandler)(nil)
