package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when NewBusinessMetrics gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// BusinessMetrics records storefront sales activity. It subscribes to order
// events and is called directly by checkout and the cart service.
type BusinessMetrics struct {
	logger *zap.Logger

	ordersPlaced     *Counter
	revenueCents     *Counter
	ordersCancelled  *Counter
	unitsRestocked   *Counter
	checkoutTotal    *Counter
	checkoutDuration *Histogram
	cartAdds         *Counter
}

// NewBusinessMetrics creates the storefront instruments on meter.
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	var err error
	if bm.ordersPlaced, err = NewCounter(meter, "storefront_orders_placed_total", "Orders placed through checkout", "{orders}"); err != nil {
		return nil, err
	}
	if bm.revenueCents, err = NewCounter(meter, "storefront_order_revenue_cents_total", "Order totals at checkout in cents", "{cents}"); err != nil {
		return nil, err
	}
	if bm.ordersCancelled, err = NewCounter(meter, "storefront_orders_cancelled_total", "Orders cancelled and restocked", "{orders}"); err != nil {
		return nil, err
	}
	if bm.unitsRestocked, err = NewCounter(meter, "storefront_units_restocked_total", "Units returned to stock by cancellations", "{units}"); err != nil {
		return nil, err
	}
	if bm.checkoutTotal, err = NewCounter(meter, "storefront_checkout_total", "Checkout attempts by result", "{attempts}"); err != nil {
		return nil, err
	}
	if bm.checkoutDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "storefront_checkout_duration_seconds",
		Description: "Time spent placing an order",
		Unit:        "s",
		Boundaries:  CheckoutDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.cartAdds, err = NewCounter(meter, "storefront_cart_adds_total", "Units added to carts", "{units}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordCheckout counts one checkout attempt and its latency.
func (bm *BusinessMetrics) RecordCheckout(ctx context.Context, result string, elapsed time.Duration) {
	attr := AttrCheckoutResult.String(result)
	bm.checkoutTotal.Inc(ctx, attr)
	bm.checkoutDuration.RecordDuration(ctx, elapsed, attr)
}

// RecordCartAdd counts one unit put into a cart.
func (bm *BusinessMetrics) RecordCartAdd(ctx context.Context) {
	bm.cartAdds.Inc(ctx)
}

// Handle implements shared.EventHandler.
func (bm *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		bm.ordersPlaced.Inc(ctx)
		bm.revenueCents.Add(ctx, e.OrderTotal.Shift(2).Round(0).IntPart())
	case *trade.OrderCancelledEvent:
		source := attribute.String(string(AttrCancelSource), e.Reason)
		bm.ordersCancelled.Inc(ctx, source)
		bm.unitsRestocked.Add(ctx, int64(e.Restocked), source)
	default:
		bm.logger.Debug("ignoring event", zap.String("event_type", event.EventType()))
	}
	return nil
}

// EventTypes implements shared.EventHandler.
func (bm *BusinessMetrics) EventTypes() []string {
	return []string{trade.EventTypeOrderPlaced, trade.EventTypeOrderCancelled}
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
