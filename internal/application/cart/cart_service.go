// Package cart implements the session cart use cases.
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Metrics receives cart activity
type Metrics interface {
	RecordCartAdd(ctx context.Context)
}

// CartService manages the cart of a session
type CartService struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	metrics     Metrics
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetMetrics sets the metrics sink
func (s *CartService) SetMetrics(m Metrics) {
	s.metrics = m
}

// Add puts one unit of the product into the session cart, creating the cart
// on first use. The quantity of an item never exceeds the product's stock.
func (s *CartService) Add(ctx context.Context, sessionID, productSlug string) (*CartView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "add")
	defer span.End()
	telemetry.SetAttributes(span, "product_slug", productSlug)

	view, err := s.add(ctx, sessionID, productSlug)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrItemCount, view.Quantity)
	return view, nil
}

func (s *CartService) add(ctx context.Context, sessionID, productSlug string) (*CartView, error) {
	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, catalog.ErrProductUnavailable
	}

	c, err := s.cartRepo.Update(ctx, sessionID, true, func(c *cart.Cart) error {
		_, err := c.Add(product)
		return err
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordCartAdd(ctx)
	}
	return s.view(ctx, c)
}

// Decrease takes one unit out of the cart and drops the item at zero.
// A missing cart or item is not an error.
func (s *CartService) Decrease(ctx context.Context, sessionID, productSlug string) (*CartView, error) {
	return s.change(ctx, sessionID, productSlug, func(c *cart.Cart, productID uuid.UUID) {
		c.Decrease(productID)
	})
}

// Remove drops the product from the cart. A missing cart or item is not an error.
func (s *CartService) Remove(ctx context.Context, sessionID, productSlug string) (*CartView, error) {
	return s.change(ctx, sessionID, productSlug, func(c *cart.Cart, productID uuid.UUID) {
		c.Remove(productID)
	})
}

func (s *CartService) change(ctx context.Context, sessionID, productSlug string, apply func(*cart.Cart, uuid.UUID)) (*CartView, error) {
	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	c, err := s.cartRepo.Update(ctx, sessionID, false, func(c *cart.Cart) error {
		apply(c, product.ID)
		return nil
	})
	if errors.Is(err, shared.ErrNotFound) {
		return emptyView(), nil
	}
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

// View returns the cart page for the session; no cart yields an empty view
func (s *CartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return emptyView(), nil
	}
	c, err := s.cartRepo.FindBySession(ctx, sessionID)
	if errors.Is(err, shared.ErrNotFound) {
		return emptyView(), nil
	}
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

// Count is the number of units in the session cart
func (s *CartService) Count(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, nil
	}
	c, err := s.cartRepo.FindBySession(ctx, sessionID)
	if errors.Is(err, shared.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// List lists carts for staff, most recently touched first
func (s *CartService) List(ctx context.Context, filter CartListFilter) ([]CartResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	carts, err := s.cartRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.cartRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]CartResponse, 0, len(carts))
	for i := range carts {
		resp = append(resp, ToCartResponse(&carts[i]))
	}
	return resp, total, nil
}

// SetItemActive includes or excludes an item from the cart total and checkout
func (s *CartService) SetItemActive(ctx context.Context, itemID uuid.UUID, active bool) error {
	return s.cartRepo.SetItemActive(ctx, itemID, active)
}

// PurgeStale deletes carts untouched for longer than maxAge
func (s *CartService) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	before := time.Now().UTC().Add(-maxAge)
	deleted, err := s.cartRepo.DeleteStale(ctx, before)
	if err != nil {
		return 0, err
	}
	s.logger.Info("purged stale carts", zap.Int64("deleted", deleted), zap.Time("before", before))
	return deleted, nil
}

func (s *CartService) view(ctx context.Context, c *cart.Cart) (*CartView, error) {
	items := c.ActiveItems()
	if len(items) == 0 {
		return emptyView(), nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]cart.Line, 0, len(items))
	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, cart.Line{Item: item, Product: p})
	}
	return toView(lines), nil
}
