package trade

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/trade"
)

// TransactionScope runs a unit of work atomically across the checkout repositories.
// If fn returns an error every change made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to repositories bound to one transaction.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Carts() cart.Repository
	Orders() trade.OrderRepository
}
