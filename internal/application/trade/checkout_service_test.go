package trade

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	tx      *fakeTxScope
	svc     *CheckoutService
	userID  uuid.UUID
	cart    *cart.Cart
	mug     *catalog.Product
	poster  *catalog.Product
	metrics *MockMetrics
}

func newCheckoutFixture(t *testing.T, opts ...CheckoutOption) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		tx:      newFakeTxScope(),
		userID:  uuid.New(),
		mug:     newTestProduct("Mug", "12.50", 5),
		poster:  newTestProduct("Poster", "3.00", 1),
		metrics: new(MockMetrics),
	}
	c, err := cart.NewCart("session-1")
	require.NoError(t, err)
	_, err = c.Add(f.mug)
	require.NoError(t, err)
	_, err = c.Add(f.mug)
	require.NoError(t, err)
	_, err = c.Add(f.poster)
	require.NoError(t, err)
	f.cart = c

	f.metrics.On("RecordCheckout", mock.Anything, mock.Anything, mock.Anything).Return()
	opts = append([]CheckoutOption{WithCheckoutMetrics(f.metrics)}, opts...)
	f.svc = NewCheckoutService(f.tx, nil, opts...)
	return f
}

func (f *checkoutFixture) expectHappyPath() {
	ctx := mock.Anything
	f.tx.carts.On("FindBySession", ctx, "session-1").Return(f.cart, nil)
	f.tx.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*f.mug, *f.poster}, nil)
	f.tx.orders.On("ExistsByNumber", ctx, mock.Anything).Return(false, nil)
	f.tx.orders.On("Save", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)
	f.tx.products.On("DecrementStock", ctx, f.mug.ID, 2).Return(nil)
	f.tx.products.On("DecrementStock", ctx, f.poster.ID, 1).Return(nil)
	f.tx.carts.On("ClearItems", ctx, f.cart.ID, mock.Anything).Return(nil)
}

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	f := newCheckoutFixture(t)
	f.expectHappyPath()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.svc.SetEventPublisher(publisher)

	resp, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "")
	require.NoError(t, err)

	assert.Len(t, resp.OrderNumber, trade.OrderNumberLength)
	assert.Equal(t, f.userID, resp.UserID)
	assert.True(t, decimal.RequireFromString("28.00").Equal(resp.OrderTotal))
	assert.Equal(t, "New", resp.Status)
	assert.True(t, resp.IsOrdered)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Mug", resp.Items[0].ProductName)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("25.00").Equal(resp.Items[0].SubTotal))

	cleared := f.tx.carts.Calls[1].Arguments.Get(2).([]uuid.UUID)
	assert.ElementsMatch(t, []uuid.UUID{f.cart.Items[0].ID, f.cart.Items[1].ID}, cleared)

	events := publisher.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
	require.Len(t, events, 1)
	placed, ok := events[0].(*trade.OrderPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, resp.OrderNumber, placed.OrderNumber)
	assert.Equal(t, 3, placed.ItemCount)

	f.metrics.AssertCalled(t, "RecordCheckout", mock.Anything, CheckoutResultPlaced, mock.Anything)
	f.tx.products.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_RequiresUser(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.PlaceOrder(context.Background(), uuid.Nil, "session-1", validShipping(), "")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Zero(t, f.tx.calls)
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	t.Run("no cart", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.tx.carts.On("FindBySession", mock.Anything, "session-1").Return(nil, shared.ErrNotFound)

		_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "")
		assert.ErrorIs(t, err, cart.ErrCartEmpty)
		f.metrics.AssertCalled(t, "RecordCheckout", mock.Anything, CheckoutResultEmptyCart, mock.Anything)
	})

	t.Run("only inactive items", func(t *testing.T) {
		f := newCheckoutFixture(t)
		for i := range f.cart.Items {
			f.cart.Items[i].IsActive = false
		}
		f.tx.carts.On("FindBySession", mock.Anything, "session-1").Return(f.cart, nil)

		_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "")
		assert.ErrorIs(t, err, cart.ErrCartEmpty)
		f.tx.products.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_PlaceOrder_InvalidShipping(t *testing.T) {
	f := newCheckoutFixture(t)
	f.tx.carts.On("FindBySession", mock.Anything, "session-1").Return(f.cart, nil)

	req := validShipping()
	req.Email = "not-an-email"
	_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", req, "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	f.tx.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.metrics.AssertCalled(t, "RecordCheckout", mock.Anything, CheckoutResultInvalid, mock.Anything)
}

func TestCheckoutService_PlaceOrder_ProductUnavailable(t *testing.T) {
	f := newCheckoutFixture(t)
	f.poster.IsAvailable = false
	f.tx.carts.On("FindBySession", mock.Anything, "session-1").Return(f.cart, nil)
	f.tx.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*f.mug, *f.poster}, nil)

	_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "")
	assert.ErrorIs(t, err, catalog.ErrProductUnavailable)
	assert.Contains(t, err.Error(), "Poster")
	f.tx.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCheckoutService_PlaceOrder_InsufficientStock(t *testing.T) {
	f := newCheckoutFixture(t)
	f.tx.carts.On("FindBySession", mock.Anything, "session-1").Return(f.cart, nil)
	f.tx.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*f.mug, *f.poster}, nil)
	f.tx.orders.On("ExistsByNumber", mock.Anything, mock.Anything).Return(false, nil)
	f.tx.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.tx.products.On("DecrementStock", mock.Anything, f.mug.ID, 2).Return(shared.ErrInsufficientStock)

	publisher := new(MockEventPublisher)
	f.svc.SetEventPublisher(publisher)

	_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "")
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Mug")
	f.tx.carts.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.metrics.AssertCalled(t, "RecordCheckout", mock.Anything, CheckoutResultInsufficient, mock.Anything)
}

func TestCheckoutService_PlaceOrder_RegeneratesTakenOrderNumber(t *testing.T) {
	f := newCheckoutFixture(t)
	f.tx.orders.On("ExistsByNumber", mock.Anything, mock.Anything).Return(true, nil).Once()
	f.expectHappyPath()

	_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "")
	require.NoError(t, err)
	f.tx.orders.AssertNumberOfCalls(t, "ExistsByNumber", 2)
}

func TestCheckoutService_PlaceOrder_OrderNumberExhausted(t *testing.T) {
	f := newCheckoutFixture(t)
	f.tx.carts.On("FindBySession", mock.Anything, "session-1").Return(f.cart, nil)
	f.tx.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*f.mug, *f.poster}, nil)
	f.tx.orders.On("ExistsByNumber", mock.Anything, mock.Anything).Return(true, nil)

	_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "")
	assert.ErrorIs(t, err, errOrderNumberConflict)
	f.metrics.AssertCalled(t, "RecordCheckout", mock.Anything, CheckoutResultFailed, mock.Anything)
}

func TestCheckoutService_PlaceOrder_Idempotent(t *testing.T) {
	store := new(MockIdempotencyStore)
	f := newCheckoutFixture(t, WithIdempotency(store, 0))
	key := "checkout:" + f.userID.String() + ":abc"

	t.Run("first call places and stores the order", func(t *testing.T) {
		f.expectHappyPath()
		store.On("Result", mock.Anything, key).Return("", false, nil).Once()
		store.On("Reserve", mock.Anything, key, mock.Anything).Return(true, nil).Once()
		store.On("Complete", mock.Anything, key, mock.Anything, mock.Anything).Return(nil).Once()

		resp, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "abc")
		require.NoError(t, err)

		stored := store.Calls[2].Arguments.String(2)
		var replay OrderResponse
		require.NoError(t, json.Unmarshal([]byte(stored), &replay))
		assert.Equal(t, resp.OrderNumber, replay.OrderNumber)
	})

	t.Run("retry returns the stored order", func(t *testing.T) {
		calls := f.tx.calls
		payload, _ := json.Marshal(OrderResponse{OrderNumber: "ABCDEFGHIJ0123456789"})
		store.On("Result", mock.Anything, key).Return(string(payload), true, nil).Once()

		resp, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "ABCDEFGHIJ0123456789", resp.OrderNumber)
		assert.Equal(t, calls, f.tx.calls)
		f.metrics.AssertCalled(t, "RecordCheckout", mock.Anything, CheckoutResultReplayed, mock.Anything)
	})
}

func TestCheckoutService_PlaceOrder_IdempotencyInProgress(t *testing.T) {
	store := new(MockIdempotencyStore)
	f := newCheckoutFixture(t, WithIdempotency(store, 0))
	store.On("Result", mock.Anything, mock.Anything).Return("", false, nil)
	store.On("Reserve", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "abc")
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	assert.Zero(t, f.tx.calls)
}

func TestCheckoutService_PlaceOrder_ReleasesKeyOnFailure(t *testing.T) {
	store := new(MockIdempotencyStore)
	f := newCheckoutFixture(t, WithIdempotency(store, 0))
	store.On("Result", mock.Anything, mock.Anything).Return("", false, nil)
	store.On("Reserve", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	store.On("Release", mock.Anything, mock.Anything).Return(nil)
	f.tx.carts.On("FindBySession", mock.Anything, "session-1").Return(nil, errors.New("connection reset"))

	_, err := f.svc.PlaceOrder(context.Background(), f.userID, "session-1", validShipping(), "abc")
	assert.EqualError(t, err, "connection reset")
	store.AssertCalled(t, "Release", mock.Anything, "checkout:"+f.userID.String()+":abc")
	store.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
