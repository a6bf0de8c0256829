package trade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Checkout results reported to Metrics.
const (
	CheckoutResultPlaced       = "placed"
	CheckoutResultReplayed     = "replayed"
	CheckoutResultEmptyCart    = "empty_cart"
	CheckoutResultInvalid      = "invalid"
	CheckoutResultUnavailable  = "unavailable"
	CheckoutResultInsufficient = "insufficient_stock"
	CheckoutResultFailed       = "failed"
)

const maxOrderNumberAttempts = 5

var (
	ErrCheckoutInProgress  = shared.NewDomainError("CHECKOUT_IN_PROGRESS", "A checkout with this idempotency key is still being processed")
	errOrderNumberConflict = errors.New("could not allocate a unique order number")
)

// Metrics receives checkout outcomes
type Metrics interface {
	RecordCheckout(ctx context.Context, result string, elapsed time.Duration)
}

// CheckoutService turns a session cart into a placed order
type CheckoutService struct {
	txScope        TransactionScope
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	eventPublisher shared.EventPublisher
	metrics        Metrics
	logger         *zap.Logger
}

// CheckoutOption configures a CheckoutService
type CheckoutOption func(*CheckoutService)

// WithIdempotency enables Idempotency-Key handling backed by store
func WithIdempotency(store shared.IdempotencyStore, ttl time.Duration) CheckoutOption {
	return func(s *CheckoutService) {
		s.idempotency = store
		s.idempotencyTTL = ttl
	}
}

// WithCheckoutMetrics sets the metrics sink
func WithCheckoutMetrics(m Metrics) CheckoutOption {
	return func(s *CheckoutService) {
		s.metrics = m
	}
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(txScope TransactionScope, logger *zap.Logger, opts ...CheckoutOption) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CheckoutService{
		txScope:        txScope,
		idempotencyTTL: 24 * time.Hour,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEventPublisher sets the event publisher
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder checks out the session cart for the user. With a non-empty
// idempotencyKey a retried call returns the order placed by the first one.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, sessionID string, req CheckoutRequest, idempotencyKey string) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place_order")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrUserID, userID.String(),
		"idempotent", idempotencyKey != "")

	start := time.Now()
	resp, result, err := s.placeOrder(ctx, userID, sessionID, req, idempotencyKey)
	if s.metrics != nil {
		s.metrics.RecordCheckout(ctx, result, time.Since(start))
	}

	telemetry.SetAttributes(span, "checkout_result", result)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, resp.OrderNumber,
		telemetry.SpanAttrItemCount, len(resp.Items),
		telemetry.SpanAttrTotal, resp.OrderTotal.StringFixed(2))
	return resp, nil
}

func (s *CheckoutService) placeOrder(ctx context.Context, userID uuid.UUID, sessionID string, req CheckoutRequest, idempotencyKey string) (*OrderResponse, string, error) {
	if userID == uuid.Nil {
		return nil, CheckoutResultInvalid, shared.ErrUnauthorized
	}
	if idempotencyKey == "" || s.idempotency == nil {
		return s.checkout(ctx, userID, sessionID, req)
	}

	key := fmt.Sprintf("checkout:%s:%s", userID, idempotencyKey)
	if resp, ok := s.replay(ctx, key); ok {
		return resp, CheckoutResultReplayed, nil
	}

	reserved, err := s.idempotency.Reserve(ctx, key, s.idempotencyTTL)
	if err != nil {
		return nil, CheckoutResultFailed, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if !reserved {
		if resp, ok := s.replay(ctx, key); ok {
			return resp, CheckoutResultReplayed, nil
		}
		return nil, CheckoutResultFailed, ErrCheckoutInProgress
	}

	resp, result, err := s.checkout(ctx, userID, sessionID, req)
	if err != nil {
		if rerr := s.idempotency.Release(ctx, key); rerr != nil {
			s.logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(rerr))
		}
		return nil, result, err
	}

	payload, err := json.Marshal(resp)
	if err == nil {
		err = s.idempotency.Complete(ctx, key, string(payload), s.idempotencyTTL)
	}
	if err != nil {
		// the order is committed; a retry will report the key as in progress until it expires
		s.logger.Error("failed to store checkout result", zap.String("key", key), zap.Error(err))
	}
	return resp, result, nil
}

func (s *CheckoutService) replay(ctx context.Context, key string) (*OrderResponse, bool) {
	stored, ok, err := s.idempotency.Result(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read idempotency result", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp OrderResponse
	if err := json.Unmarshal([]byte(stored), &resp); err != nil {
		s.logger.Warn("discarding unreadable idempotency result", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &resp, true
}

func (s *CheckoutService) checkout(ctx context.Context, userID uuid.UUID, sessionID string, req CheckoutRequest) (*OrderResponse, string, error) {
	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.Carts().FindBySession(ctx, sessionID)
		if errors.Is(err, shared.ErrNotFound) {
			return cart.ErrCartEmpty
		}
		if err != nil {
			return err
		}
		items := c.ActiveItems()
		if len(items) == 0 {
			return cart.ErrCartEmpty
		}

		shipping := req.ShippingDetails()
		if err := shipping.Validate(); err != nil {
			return err
		}

		products, err := s.loadProducts(ctx, repos.Products(), items)
		if err != nil {
			return err
		}

		order, err = s.newOrder(ctx, repos.Orders(), userID, shipping)
		if err != nil {
			return err
		}
		itemIDs := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			p := products[item.ProductID]
			if err := order.AddItem(p.ID, p.Name, p.Price, item.Quantity); err != nil {
				return err
			}
			itemIDs = append(itemIDs, item.ID)
		}
		if err := order.Place(); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		for _, item := range items {
			if err := repos.Products().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					p := products[item.ProductID]
					return shared.NewDomainError(shared.ErrInsufficientStock.Code,
						fmt.Sprintf("Sorry, %s does not have %d items in stock.", p.Name, item.Quantity))
				}
				return err
			}
		}

		return repos.Carts().ClearItems(ctx, c.ID, itemIDs)
	})
	if err != nil {
		return nil, checkoutResult(err), err
	}

	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.String("order_total", order.OrderTotal.StringFixed(2)),
		zap.Int("item_count", order.ItemCount()))
	s.publish(ctx, order)

	resp := ToOrderResponse(order)
	return &resp, CheckoutResultPlaced, nil
}

// loadProducts returns the cart's products keyed by id; each must still be on sale.
func (s *CheckoutService) loadProducts(ctx context.Context, repo catalog.ProductRepository, items []cart.Item) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		products[found[i].ID] = &found[i]
	}
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			return nil, catalog.ErrProductUnavailable
		}
		if !p.IsAvailable {
			return nil, shared.NewDomainError(catalog.ErrProductUnavailable.Code,
				fmt.Sprintf("%s is no longer available.", p.Name))
		}
	}
	return products, nil
}

func (s *CheckoutService) newOrder(ctx context.Context, repo trade.OrderRepository, userID uuid.UUID, shipping trade.ShippingDetails) (*trade.Order, error) {
	order, err := trade.NewOrder(userID, shipping)
	if err != nil {
		return nil, err
	}
	for range maxOrderNumberAttempts {
		exists, err := repo.ExistsByNumber(ctx, order.OrderNumber)
		if err != nil {
			return nil, err
		}
		if !exists {
			return order, nil
		}
		if order.OrderNumber, err = trade.NewOrderNumber(); err != nil {
			return nil, err
		}
	}
	return nil, errOrderNumberConflict
}

func (s *CheckoutService) publish(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil {
		order.ClearDomainEvents()
		return
	}
	if err := s.eventPublisher.Publish(ctx, order.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish order events",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
	order.ClearDomainEvents()
}

func checkoutResult(err error) string {
	switch {
	case errors.Is(err, cart.ErrCartEmpty):
		return CheckoutResultEmptyCart
	case errors.Is(err, catalog.ErrProductUnavailable):
		return CheckoutResultUnavailable
	case errors.Is(err, shared.ErrInsufficientStock):
		return CheckoutResultInsufficient
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return CheckoutResultInvalid
	}
	return CheckoutResultFailed
}
