//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	cartapp "github.com/storefront/backend/internal/application/cart"
	apptrade "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

type storefront struct {
	db       *TestDB
	products *persistence.GormProductRepository
	orders   *persistence.GormOrderRepository
	carts    *cartapp.CartService
	checkout *apptrade.CheckoutService
	admin    *apptrade.OrderService
}

func newStorefront(t *testing.T, opts ...apptrade.CheckoutOption) *storefront {
	t.Helper()
	testDB := NewTestDB(t)
	products := persistence.NewGormProductRepository(testDB.DB)
	orders := persistence.NewGormOrderRepository(testDB.DB)
	txScope := persistence.NewGormTransactionScope(testDB.DB)
	return &storefront{
		db:       testDB,
		products: products,
		orders:   orders,
		carts:    cartapp.NewCartService(persistence.NewGormCartRepository(testDB.DB), products, zap.NewNop()),
		checkout: apptrade.NewCheckoutService(txScope, zap.NewNop(), opts...),
		admin:    apptrade.NewOrderService(orders, txScope, zap.NewNop()),
	}
}

func (s *storefront) product(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, p.SetStock(stock))
	require.NoError(t, s.products.Save(context.Background(), p))
	return p
}

func (s *storefront) customer(t *testing.T, username string) *identity.User {
	t.Helper()
	u, err := identity.NewUser(username, username+"@example.com", "Password123")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(s.db.DB).Create(context.Background(), u))
	return u
}

func (s *storefront) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := s.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func shippingForm() apptrade.CheckoutRequest {
	return apptrade.CheckoutRequest{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Phone:        "5550100",
		Email:        "ada@example.com",
		AddressLine1: "12 Analytical St",
		City:         "London",
		Country:      "UK",
	}
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	s := newStorefront(t)
	mug := s.product(t, "Enamel Mug", "12.50", 5)
	lamp := s.product(t, "Desk Lamp", "40.00", 2)
	shopper := s.customer(t, "shopper")
	session := testutil.TestCartSession()

	for _, slug := range []string{mug.Slug, mug.Slug, lamp.Slug} {
		_, err := s.carts.Add(ctx, session, slug)
		require.NoError(t, err)
	}

	order, err := s.checkout.PlaceOrder(ctx, shopper.ID, session, shippingForm(), "")
	require.NoError(t, err)

	assert.True(t, trade.IsValidOrderNumber(order.OrderNumber))
	assert.Equal(t, string(trade.OrderStatusNew), order.Status)
	assert.True(t, decimal.RequireFromString("65.00").Equal(order.OrderTotal))
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 3, s.stock(t, mug.ID))
	assert.Equal(t, 1, s.stock(t, lamp.ID))

	count, err := s.carts.Count(ctx, session)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = s.checkout.PlaceOrder(ctx, shopper.ID, session, shippingForm(), "")
	assert.ErrorIs(t, err, cart.ErrCartEmpty)
}

func TestCheckout_ConcurrentBuyersNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	s := newStorefront(t)
	const buyers = 8
	last := s.product(t, "Last Vinyl", "25.00", 1)

	type buyer struct {
		userID  uuid.UUID
		session string
	}
	all := make([]buyer, buyers)
	for i := range all {
		u := s.customer(t, fmt.Sprintf("buyer%d", i))
		all[i] = buyer{userID: u.ID, session: uuid.NewString()}
		_, err := s.carts.Add(ctx, all[i].session, last.Slug)
		require.NoError(t, err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		placed  int
		refused int
	)
	start := make(chan struct{})
	for _, b := range all {
		wg.Add(1)
		go func(b buyer) {
			defer wg.Done()
			<-start
			_, err := s.checkout.PlaceOrder(ctx, b.userID, b.session, shippingForm(), "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				placed++
			case assert.ErrorIs(t, err, shared.ErrInsufficientStock):
				refused++
			}
		}(b)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, placed)
	assert.Equal(t, buyers-1, refused)
	assert.Zero(t, s.stock(t, last.ID))

	total, err := s.orders.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestCheckout_IdempotentRetryReturnsSameOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	s := newStorefront(t, apptrade.WithIdempotency(store, time.Hour))
	book := s.product(t, "Field Guide", "18.00", 3)
	shopper := s.customer(t, "retrier")
	session := uuid.NewString()

	_, err := s.carts.Add(ctx, session, book.Slug)
	require.NoError(t, err)

	first, err := s.checkout.PlaceOrder(ctx, shopper.ID, session, shippingForm(), "retry-1")
	require.NoError(t, err)
	second, err := s.checkout.PlaceOrder(ctx, shopper.ID, session, shippingForm(), "retry-1")
	require.NoError(t, err)

	assert.Equal(t, first.OrderNumber, second.OrderNumber)
	assert.Equal(t, 2, s.stock(t, book.ID))
	total, err := s.orders.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestOrderService_CancelAndRestock(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	cancelled := testutil.NewEventRecorder(trade.EventTypeOrderCancelled)
	bus.Subscribe(cancelled)
	require.NoError(t, bus.Start(ctx))
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })

	s := newStorefront(t)
	s.admin.SetEventPublisher(bus)
	kettle := s.product(t, "Stovetop Kettle", "30.00", 4)

	placeOne := func(username string) *apptrade.OrderResponse {
		u := s.customer(t, username)
		session := uuid.NewString()
		_, err := s.carts.Add(ctx, session, kettle.Slug)
		require.NoError(t, err)
		_, err = s.carts.Add(ctx, session, kettle.Slug)
		require.NoError(t, err)
		order, err := s.checkout.PlaceOrder(ctx, u.ID, session, shippingForm(), "")
		require.NoError(t, err)
		return order
	}
	open := placeOne("open")
	done := placeOne("done")
	assert.Zero(t, s.stock(t, kettle.ID))

	_, err := s.admin.Accept(ctx, done.ID)
	require.NoError(t, err)
	_, err = s.admin.Complete(ctx, done.ID)
	require.NoError(t, err)

	missing := uuid.New()
	result, err := s.admin.CancelAndRestock(ctx, []uuid.UUID{open.ID, done.ID, open.ID, missing})
	require.NoError(t, err)

	assert.Equal(t, []string{open.OrderNumber}, result.Cancelled)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, done.OrderNumber, result.Skipped[0].OrderNumber)
	assert.Equal(t, missing.String(), result.Skipped[1].OrderNumber)
	assert.Equal(t, 2, s.stock(t, kettle.ID))

	reloaded, err := s.orders.FindByID(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusCancelled, reloaded.Status)

	events := cancelled.RequireCount(t, 1, 2*time.Second)
	evt, ok := events[0].(*trade.OrderCancelledEvent)
	require.True(t, ok)
	assert.Equal(t, open.OrderNumber, evt.OrderNumber)
	assert.Equal(t, 2, evt.Restocked)
}

func TestCart_ConcurrentFirstAddsShareOneCart(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	s := newStorefront(t)
	mug := s.product(t, "Enamel Mug", "12.50", 20)
	lamp := s.product(t, "Desk Lamp", "40.00", 20)
	session := testutil.TestCartSession()

	const tabs = 6
	var wg sync.WaitGroup
	errs := make(chan error, 2*tabs)
	for i := 0; i < tabs; i++ {
		for _, slug := range []string{mug.Slug, lamp.Slug} {
			wg.Add(1)
			go func(slug string) {
				defer wg.Done()
				_, err := s.carts.Add(ctx, session, slug)
				errs <- err
			}(slug)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	count, err := s.carts.Count(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 2*tabs, count)
}
