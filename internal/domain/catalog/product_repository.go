package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Filter keys understood by ProductRepository in shared.Filter.Filters
const (
	FilterAvailable   = "is_available"
	FilterCategoryID  = "category_id"
	FilterCreatedFrom = "created_from"
	FilterCreatedTo   = "created_to"
)

// ProductRepository defines the interface for product persistence.
// filter.Search matches name or description case-insensitively.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save inserts a new product or updates an existing one guarded by its version
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock takes quantity units only if that many are left.
	// It returns shared.ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	// IncrementStock puts quantity units back
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
