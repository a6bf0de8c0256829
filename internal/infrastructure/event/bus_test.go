package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Order", uuid.New()),
		Data:            "test data",
	}
}

type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	ctxErrs    []error
	err        error
	panicWith  any
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	h.ctxErrs = append(h.ctxErrs, ctx.Err())
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("OrderPlaced")
	bus.Subscribe(handler)

	event := newTestEvent("OrderPlaced")
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_MultipleEventsAndHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	h1 := newTestHandler()
	h2 := newTestHandler()
	bus.Subscribe(h1, "OrderPlaced")
	bus.Subscribe(h2, "OrderPlaced", "OrderCancelled")

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("OrderPlaced"),
		newTestEvent("OrderCancelled"),
	))

	assert.Len(t, h1.getHandled(), 1)
	assert.Len(t, h2.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := newTestHandler()
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("AnyEventType")))
	assert.Len(t, wildcard.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_HandlerErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler("OrderPlaced")
	failing.err = errors.New("boom")
	next := newTestHandler("OrderPlaced")
	bus.Subscribe(failing)
	bus.Subscribe(next)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))

	assert.Len(t, failing.getHandled(), 1)
	assert.Len(t, next.getHandled(), 1, "later handlers still run")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "handler failed to process event", logs.All()[0].Message)
}

func TestInMemoryEventBus_Publish_RecoversPanics(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	panicking := newTestHandler("OrderPlaced")
	panicking.panicWith = "kaboom"
	next := newTestHandler("OrderPlaced")
	bus.Subscribe(panicking)
	bus.Subscribe(next)

	assert.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("OrderPlaced"))
	})
	assert.Len(t, next.getHandled(), 1)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "kaboom")
}

func TestInMemoryEventBus_Publish_DetachesCallerCancellation(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithHandlerTimeout(time.Second))
	handler := newTestHandler("OrderPlaced")
	bus.Subscribe(handler)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, bus.Publish(ctx, newTestEvent("OrderPlaced")))
	require.Len(t, handler.ctxErrs, 1)
	assert.NoError(t, handler.ctxErrs[0])
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("OrderPlaced")
	bus.Subscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("OrderPlaced"))

	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("OrderPlaced"))

	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
}

func TestHandlerRegistry(t *testing.T) {
	t.Run("duplicate registration is ignored", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := newTestHandler()
		r.Register(h, "OrderPlaced")
		r.Register(h, "OrderPlaced")
		r.Register(h)
		r.Register(h)

		assert.Len(t, r.GetHandlers("OrderPlaced"), 2, "one typed and one wildcard registration")
	})

	t.Run("typed handlers come before wildcard", func(t *testing.T) {
		r := NewHandlerRegistry()
		wildcard := newTestHandler()
		typed := newTestHandler()
		r.Register(wildcard)
		r.Register(typed, "OrderCancelled")

		hs := r.GetHandlers("OrderCancelled")
		require.Len(t, hs, 2)
		assert.Same(t, typed, hs[0])
		assert.Same(t, wildcard, hs[1])
	})

	t.Run("unregister drops empty types", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := newTestHandler()
		r.Register(h, "B", "A")
		assert.Equal(t, []string{"A", "B"}, r.EventTypes())

		r.Unregister(h)
		assert.Empty(t, r.EventTypes())
		assert.Empty(t, r.GetHandlers("A"))
	})
}
