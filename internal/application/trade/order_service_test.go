package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newOrderService() (*OrderService, *MockOrderRepository, *fakeTxScope) {
	repo := new(MockOrderRepository)
	tx := newFakeTxScope()
	return NewOrderService(repo, tx, nil), repo, tx
}

func TestOrderService_MyOrders(t *testing.T) {
	svc, repo, _ := newOrderService()
	userID := uuid.New()
	order := newTestOrder(trade.OrderStatusNew, newTestProduct("Mug", "10.00", 3))

	repo.On("FindByUser", mock.Anything, userID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})).Return([]trade.Order{*order}, nil)
	repo.On("CountByUser", mock.Anything, userID).Return(int64(1), nil)

	items, total, err := svc.MyOrders(context.Background(), userID, OrderListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, order.OrderNumber, items[0].OrderNumber)
	assert.Equal(t, "Ada Lovelace", items[0].FullName)
	assert.Equal(t, 2, items[0].ItemCount)
}

func TestOrderService_OrderDetail(t *testing.T) {
	svc, repo, _ := newOrderService()
	userID := uuid.New()
	order := newTestOrder(trade.OrderStatusNew, newTestProduct("Mug", "10.00", 3), newTestProduct("Lamp", "4.50", 3))

	repo.On("FindByNumberForUser", mock.Anything, userID, order.OrderNumber).Return(order, nil)

	resp, err := svc.OrderDetail(context.Background(), userID, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, "29.00", resp.SubTotal.StringFixed(2))
	assert.Len(t, resp.Items, 2)

	resp, err = svc.OrderComplete(context.Background(), userID, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, resp.ID)
}

func TestOrderService_OrderDetail_OtherUser(t *testing.T) {
	svc, repo, _ := newOrderService()
	number := "ABCDEFGHIJKLMNOPQRST"
	repo.On("FindByNumberForUser", mock.Anything, mock.Anything, number).Return(nil, shared.ErrNotFound)

	_, err := svc.OrderDetail(context.Background(), uuid.New(), number)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.OrderDetail(context.Background(), uuid.New(), "bad")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNumberOfCalls(t, "FindByNumberForUser", 1)
}

func TestOrderService_List_FiltersByStatus(t *testing.T) {
	svc, repo, _ := newOrderService()
	match := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters[trade.FilterStatus] == "Accepted" && f.Search == "ada"
	})
	repo.On("FindAll", mock.Anything, match).Return([]trade.Order{}, nil)
	repo.On("Count", mock.Anything, match).Return(int64(0), nil)

	items, total, err := svc.List(context.Background(), OrderListFilter{Status: "Accepted", Search: "ada"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestOrderService_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    trade.OrderStatus
		apply   func(*OrderService, context.Context, uuid.UUID) (*OrderResponse, error)
		want    string
		wantErr bool
	}{
		{"accept new", trade.OrderStatusNew, (*OrderService).Accept, "Accepted", false},
		{"complete accepted", trade.OrderStatusAccepted, (*OrderService).Complete, "Completed", false},
		{"refund completed", trade.OrderStatusCompleted, (*OrderService).Refund, "Refunded", false},
		{"complete new", trade.OrderStatusNew, (*OrderService).Complete, "", true},
		{"accept cancelled", trade.OrderStatusCancelled, (*OrderService).Accept, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newOrderService()
			order := newTestOrder(tt.from, newTestProduct("Mug", "10.00", 3))
			repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
			repo.On("Save", mock.Anything, order).Return(nil)

			resp, err := tt.apply(svc, context.Background(), order.ID)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidState)
				repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Status)
			assert.Equal(t, 2, resp.Version)
		})
	}
}

func TestOrderService_Cancel_Restocks(t *testing.T) {
	svc, _, tx := newOrderService()
	mug := newTestProduct("Mug", "10.00", 3)
	order := newTestOrder(trade.OrderStatusAccepted, mug)
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	svc.SetEventPublisher(publisher)

	tx.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	tx.products.On("IncrementStock", mock.Anything, mug.ID, 2).Return(nil)
	tx.orders.On("Save", mock.Anything, order).Return(nil)

	resp, err := svc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", resp.Status)
	tx.products.AssertExpectations(t)

	events := publisher.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
	var cancelled *trade.OrderCancelledEvent
	for _, e := range events {
		if c, ok := e.(*trade.OrderCancelledEvent); ok {
			cancelled = c
		}
	}
	require.NotNil(t, cancelled)
	assert.Equal(t, CancelReasonAdmin, cancelled.Reason)
	assert.Equal(t, 2, cancelled.Restocked)
}

func TestOrderService_Cancel_Completed(t *testing.T) {
	svc, _, tx := newOrderService()
	order := newTestOrder(trade.OrderStatusCompleted, newTestProduct("Mug", "10.00", 3))
	tx.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.Cancel(context.Background(), order.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	tx.products.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Cancel_SkipsDeletedProducts(t *testing.T) {
	svc, _, tx := newOrderService()
	gone := newTestProduct("Gone", "1.00", 3)
	order := newTestOrder(trade.OrderStatusNew, gone)
	tx.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	tx.products.On("IncrementStock", mock.Anything, gone.ID, 2).Return(shared.ErrNotFound)
	tx.orders.On("Save", mock.Anything, order).Return(nil)

	_, err := svc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
}

func TestOrderService_CancelAndRestock(t *testing.T) {
	svc, _, tx := newOrderService()
	mug := newTestProduct("Mug", "10.00", 3)
	fresh := newTestOrder(trade.OrderStatusNew, mug)
	accepted := newTestOrder(trade.OrderStatusAccepted, mug)
	completed := newTestOrder(trade.OrderStatusCompleted, mug)
	cancelled := newTestOrder(trade.OrderStatusCancelled, mug)
	missing := uuid.New()

	for _, o := range []*trade.Order{fresh, accepted, completed, cancelled} {
		tx.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	}
	tx.orders.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	tx.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
	tx.products.On("IncrementStock", mock.Anything, mug.ID, 2).Return(nil)

	result, err := svc.CancelAndRestock(context.Background(),
		[]uuid.UUID{fresh.ID, accepted.ID, completed.ID, cancelled.ID, missing, fresh.ID})
	require.NoError(t, err)

	assert.Equal(t, []string{fresh.OrderNumber, accepted.OrderNumber}, result.Cancelled)
	assert.Equal(t, []SkippedOrder{
		{OrderNumber: completed.OrderNumber, Reason: "order is Completed"},
		{OrderNumber: cancelled.OrderNumber, Reason: "order is Cancelled"},
		{OrderNumber: missing.String(), Reason: "order not found"},
	}, result.Skipped)
	tx.products.AssertNumberOfCalls(t, "IncrementStock", 2)
	tx.orders.AssertNumberOfCalls(t, "Save", 2)

	// running it again touches nothing
	again, err := svc.CancelAndRestock(context.Background(), []uuid.UUID{fresh.ID, accepted.ID})
	require.NoError(t, err)
	assert.Empty(t, again.Cancelled)
	assert.Len(t, again.Skipped, 2)
	tx.products.AssertNumberOfCalls(t, "IncrementStock", 2)
}

func TestOrderService_CancelAndRestock_StopsOnInfrastructureError(t *testing.T) {
	svc, _, tx := newOrderService()
	order := newTestOrder(trade.OrderStatusNew, newTestProduct("Mug", "10.00", 3))
	tx.orders.On("FindByID", mock.Anything, order.ID).Return(nil, errors.New("db down"))

	result, err := svc.CancelAndRestock(context.Background(), []uuid.UUID{order.ID, uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Empty(t, result.Cancelled)
	tx.orders.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestOrderService_CancelAndRestock_RecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	svc, _, tx := newOrderService()
	mug := newTestProduct("Mug", "10.00", 3)
	fresh := newTestOrder(trade.OrderStatusNew, mug)
	completed := newTestOrder(trade.OrderStatusCompleted, mug)
	tx.orders.On("FindByID", mock.Anything, fresh.ID).Return(fresh, nil)
	tx.orders.On("FindByID", mock.Anything, completed.ID).Return(completed, nil)
	tx.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
	tx.products.On("IncrementStock", mock.Anything, mug.ID, 2).Return(nil)

	_, err := svc.CancelAndRestock(context.Background(), []uuid.UUID{fresh.ID, completed.ID})
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "order.cancel_and_restock", spans[0].Name())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "order_cancelled", spans[0].Events()[0].Name)

	attrs := make(map[string]int64)
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInt64()
	}
	assert.Equal(t, int64(2), attrs["requested"])
	assert.Equal(t, int64(1), attrs["cancelled"])
	assert.Equal(t, int64(1), attrs["skipped"])
}
