package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Filter keys understood by OrderRepository in shared.Filter.Filters
const (
	FilterStatus = "status"
	FilterUserID = "user_id"
)

// OrderRepository defines the interface for order persistence.
// Listings are newest first unless the filter orders otherwise.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)
	// FindByNumberForUser only returns placed orders owned by userID
	FindByNumberForUser(ctx context.Context, userID uuid.UUID, orderNumber string) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// FindAll searches order number, names and email with filter.Search
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)

	// Save inserts the order with its items, or updates the header guarded by version
	Save(ctx context.Context, order *Order) error
}
