package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Cancellation sources, recorded on OrderCancelled.
const (
	CancelReasonAdmin     = "admin"
	CancelReasonAdminBulk = "admin_bulk"
)

// OrderService serves customer order history and admin order management
type OrderService struct {
	orderRepo      trade.OrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, txScope TransactionScope, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// MyOrders lists the user's placed orders, newest first
func (s *OrderService) MyOrders(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderListItemResponses(orders), total, nil
}

// OrderDetail returns one of the user's placed orders. Orders of other
// users are reported as not found.
func (s *OrderService) OrderDetail(ctx context.Context, userID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	if !trade.IsValidOrderNumber(orderNumber) {
		return nil, shared.ErrNotFound
	}
	order, err := s.orderRepo.FindByNumberForUser(ctx, userID, orderNumber)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// OrderComplete is the confirmation shown right after checkout
func (s *OrderService) OrderComplete(ctx context.Context, userID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	return s.OrderDetail(ctx, userID, orderNumber)
}

// List lists all orders for staff; Search matches order number, name and email
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	if filter.Status != "" {
		domainFilter.Filters[trade.FilterStatus] = filter.Status
	}
	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderListItemResponses(orders), total, nil
}

// GetByID retrieves any order
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Accept moves a New order to Accepted
func (s *OrderService) Accept(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.changeStatus(ctx, orderID, (*trade.Order).Accept)
}

// Complete moves an Accepted order to Completed
func (s *OrderService) Complete(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.changeStatus(ctx, orderID, (*trade.Order).Complete)
}

// Refund moves a Completed order to Refunded
func (s *OrderService) Refund(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.changeStatus(ctx, orderID, (*trade.Order).Refund)
}

func (s *OrderService) changeStatus(ctx context.Context, orderID uuid.UUID, transition func(*trade.Order) error) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := transition(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, order)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Cancel cancels a single order and restocks its items in the same transaction
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.cancelAndRestock(ctx, orderID, CancelReasonAdmin)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// CancelAndRestock cancels every order that may still be cancelled, each in
// its own transaction. Orders that cannot be cancelled are reported as
// skipped, so repeating the action never restocks twice.
func (s *OrderService) CancelAndRestock(ctx context.Context, orderIDs []uuid.UUID) (*CancelAndRestockResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "cancel_and_restock")
	defer span.End()
	telemetry.SetAttributes(span, "requested", len(orderIDs))

	result := &CancelAndRestockResult{
		Cancelled: make([]string, 0, len(orderIDs)),
		Skipped:   make([]SkippedOrder, 0),
	}
	seen := make(map[uuid.UUID]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		order, err := s.cancelAndRestock(ctx, id, CancelReasonAdminBulk)
		if err == nil {
			result.Cancelled = append(result.Cancelled, order.OrderNumber)
			telemetry.AddEvent(span, "order_cancelled",
				telemetry.SpanAttrOrderNumber, order.OrderNumber,
				telemetry.SpanAttrQuantity, order.ItemCount())
			continue
		}

		var skip *skippedError
		switch {
		case errors.As(err, &skip):
			result.Skipped = append(result.Skipped, SkippedOrder{OrderNumber: skip.orderNumber, Reason: skip.reason})
		case errors.Is(err, shared.ErrNotFound):
			result.Skipped = append(result.Skipped, SkippedOrder{OrderNumber: id.String(), Reason: "order not found"})
		default:
			telemetry.RecordError(span, err)
			return result, fmt.Errorf("cancel order %s: %w", id, err)
		}
	}

	telemetry.SetAttributes(span, "cancelled", len(result.Cancelled), "skipped", len(result.Skipped))
	s.logger.Info("bulk cancel and restock finished",
		zap.Int("cancelled", len(result.Cancelled)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

type skippedError struct {
	orderNumber string
	reason      string
}

func (e *skippedError) Error() string {
	return e.orderNumber + ": " + e.reason
}

func (s *OrderService) cancelAndRestock(ctx context.Context, orderID uuid.UUID, reason string) (*trade.Order, error) {
	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if reason == CancelReasonAdminBulk && !order.CanCancel() {
			return &skippedError{orderNumber: order.OrderNumber, reason: fmt.Sprintf("order is %s", order.Status)}
		}
		if err := order.Cancel(reason); err != nil {
			return err
		}
		for productID, qty := range order.RestockLines() {
			if err := repos.Products().IncrementStock(ctx, productID, qty); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					// deleted products have nothing to restock
					continue
				}
				return err
			}
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		zap.String("order_number", order.OrderNumber),
		zap.String("reason", reason),
		zap.Int("restocked_units", order.ItemCount()))
	s.publish(ctx, order)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, order *trade.Order) {
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, order.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish order events",
				zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}
	order.ClearDomainEvents()
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}
