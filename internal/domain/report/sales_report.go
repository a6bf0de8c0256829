package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

const (
	// MaxPeriod is the longest period one report may cover
	MaxPeriod = 366 * 24 * time.Hour

	DefaultTopN = 10
	MaxTopN     = 100
)

// RevenueStatuses are the order statuses whose totals count as sales
var RevenueStatuses = []trade.OrderStatus{
	trade.OrderStatusNew,
	trade.OrderStatusAccepted,
	trade.OrderStatusCompleted,
}

// SalesFilter selects placed orders created in [From, To)
type SalesFilter struct {
	From time.Time
	To   time.Time
	// TopN limits product rankings
	TopN int
}

// Validate checks the period and fills in the ranking size
func (f *SalesFilter) Validate() error {
	if f.From.IsZero() || f.To.IsZero() {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Report period needs a start and an end")
	}
	if !f.To.After(f.From) {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Report period must end after it starts")
	}
	if f.To.Sub(f.From) > MaxPeriod {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Report period cannot exceed one year")
	}
	if f.TopN <= 0 {
		f.TopN = DefaultTopN
	}
	if f.TopN > MaxTopN {
		f.TopN = MaxTopN
	}
	return nil
}

// StatusTotals counts the orders of one status
type StatusTotals struct {
	Status     trade.OrderStatus `json:"status"`
	OrderCount int64             `json:"order_count"`
	Amount     decimal.Decimal   `json:"amount"`
}

// SalesSummary aggregates a period. Revenue, order count, items and the
// average cover RevenueStatuses only; ByStatus lists every status seen.
type SalesSummary struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	TotalOrders   int64           `json:"total_orders"`
	ItemsSold     int64           `json:"items_sold"`
	Revenue       decimal.Decimal `json:"revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	ByStatus      []StatusTotals  `json:"by_status"`
}

// Summarize derives the revenue figures from per-status totals
func Summarize(filter SalesFilter, byStatus []StatusTotals, itemsSold int64) *SalesSummary {
	s := &SalesSummary{
		PeriodStart: filter.From,
		PeriodEnd:   filter.To,
		ItemsSold:   itemsSold,
		Revenue:     decimal.Zero,
		ByStatus:    byStatus,
	}
	for _, st := range byStatus {
		if isRevenueStatus(st.Status) {
			s.TotalOrders += st.OrderCount
			s.Revenue = s.Revenue.Add(st.Amount)
		}
	}
	s.AvgOrderValue = decimal.Zero
	if s.TotalOrders > 0 {
		s.AvgOrderValue = s.Revenue.Div(decimal.NewFromInt(s.TotalOrders)).Round(2)
	}
	return s
}

func isRevenueStatus(status trade.OrderStatus) bool {
	for _, s := range RevenueStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// DailySales is one day of the sales trend
type DailySales struct {
	Date       time.Time       `json:"date"`
	OrderCount int64           `json:"order_count"`
	ItemsSold  int64           `json:"items_sold"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ProductSales ranks a product by units sold
type ProductSales struct {
	Rank        int             `json:"rank"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
	OrderCount  int64           `json:"order_count"`
}

// SalesReportRepository runs the sales aggregations
type SalesReportRepository interface {
	// StatusTotals counts placed orders and sums their totals per status
	StatusTotals(ctx context.Context, filter SalesFilter) ([]StatusTotals, error)

	// ItemsSold sums the quantities of orders in RevenueStatuses
	ItemsSold(ctx context.Context, filter SalesFilter) (int64, error)

	// DailySales groups orders in RevenueStatuses by creation day, oldest first
	DailySales(ctx context.Context, filter SalesFilter) ([]DailySales, error)

	// TopProducts ranks products by units sold in RevenueStatuses orders
	TopProducts(ctx context.Context, filter SalesFilter) ([]ProductSales, error)
}
