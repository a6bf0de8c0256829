package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Repository persists carts with their items
type Repository interface {
	// FindBySession returns the session's cart with all items, or shared.ErrNotFound
	FindBySession(ctx context.Context, sessionID string) (*Cart, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Cart, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Update runs fn on the session's cart while holding the cart row lock
	// and writes back only the items fn changed. With create set a missing
	// cart is created first; otherwise it is shared.ErrNotFound. An error
	// from fn rolls everything back.
	Update(ctx context.Context, sessionID string, create bool, fn func(*Cart) error) (*Cart, error)

	// SetItemActive toggles one item and returns shared.ErrNotFound if it does not exist
	SetItemActive(ctx context.Context, itemID uuid.UUID, active bool) error

	// ClearItems deletes the given items of a cart
	ClearItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error

	// DeleteStale removes carts not updated since before and returns how many went
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
