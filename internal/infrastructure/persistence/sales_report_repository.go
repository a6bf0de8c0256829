package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/report"
	"github.com/storefront/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements report.SalesReportRepository using GORM
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// placedOrders selects placed orders of the period, aliased as o
func (r *GormSalesReportRepository) placedOrders(ctx context.Context, filter report.SalesFilter) *gorm.DB {
	return r.db.WithContext(ctx).Table("orders o").
		Where("o.is_ordered = ?", true).
		Where("o.created_at >= ? AND o.created_at < ?", filter.From.UTC(), filter.To.UTC())
}

// itemQuantities sums quantities per order so joins never repeat an order row
func (r *GormSalesReportRepository) itemQuantities(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("order_items").
		Select("order_id, SUM(quantity) AS qty").
		Group("order_id")
}

// StatusTotals counts placed orders and sums their totals per status
func (r *GormSalesReportRepository) StatusTotals(ctx context.Context, filter report.SalesFilter) ([]report.StatusTotals, error) {
	type statusRow struct {
		Status     string
		OrderCount int64
		Amount     decimal.Decimal
	}
	var rows []statusRow
	err := r.placedOrders(ctx, filter).
		Select("o.status AS status, COUNT(o.id) AS order_count, COALESCE(SUM(o.order_total), 0) AS amount").
		Group("o.status").
		Order("o.status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sales status totals: %w", err)
	}

	totals := make([]report.StatusTotals, len(rows))
	for i, row := range rows {
		totals[i] = report.StatusTotals{
			Status:     trade.OrderStatus(row.Status),
			OrderCount: row.OrderCount,
			Amount:     row.Amount,
		}
	}
	return totals, nil
}

// ItemsSold sums the quantities of orders in report.RevenueStatuses
func (r *GormSalesReportRepository) ItemsSold(ctx context.Context, filter report.SalesFilter) (int64, error) {
	var total struct{ ItemsSold int64 }
	err := r.placedOrders(ctx, filter).
		Select("COALESCE(SUM(oi.quantity), 0) AS items_sold").
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Where("o.status IN ?", report.RevenueStatuses).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sales items sold: %w", err)
	}
	return total.ItemsSold, nil
}

// dayExpr buckets o.created_at by UTC calendar day. PostgreSQL would use
// the session TimeZone for DATE(timestamptz); SQLite converts the stored
// offset to UTC on its own.
func (r *GormSalesReportRepository) dayExpr() string {
	if r.db.Dialector.Name() == "postgres" {
		return "DATE(o.created_at AT TIME ZONE 'UTC')"
	}
	return "DATE(o.created_at)"
}

// DailySales groups orders in report.RevenueStatuses by UTC creation day
func (r *GormSalesReportRepository) DailySales(ctx context.Context, filter report.SalesFilter) ([]report.DailySales, error) {
	type dailyRow struct {
		Day        string
		OrderCount int64
		ItemsSold  int64
		Revenue    decimal.Decimal
	}
	var rows []dailyRow
	day := r.dayExpr()
	err := r.placedOrders(ctx, filter).
		Select(day+` AS day,
			COUNT(o.id) AS order_count,
			COALESCE(SUM(oi.qty), 0) AS items_sold,
			COALESCE(SUM(o.order_total), 0) AS revenue`).
		Joins("LEFT JOIN (?) oi ON oi.order_id = o.id", r.itemQuantities(ctx)).
		Where("o.status IN ?", report.RevenueStatuses).
		Group(day).
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sales daily trend: %w", err)
	}

	days := make([]report.DailySales, 0, len(rows))
	for _, row := range rows {
		day, err := parseDay(row.Day)
		if err != nil {
			return nil, err
		}
		days = append(days, report.DailySales{
			Date:       day,
			OrderCount: row.OrderCount,
			ItemsSold:  row.ItemsSold,
			Revenue:    row.Revenue,
		})
	}
	return days, nil
}

// TopProducts ranks products by units sold, then by revenue
func (r *GormSalesReportRepository) TopProducts(ctx context.Context, filter report.SalesFilter) ([]report.ProductSales, error) {
	type productRow struct {
		ProductID   uuid.UUID
		ProductName string
		Quantity    int64
		Revenue     decimal.Decimal
		OrderCount  int64
	}
	var rows []productRow
	err := r.placedOrders(ctx, filter).
		Select(`oi.product_id AS product_id,
			MAX(oi.product_name) AS product_name,
			SUM(oi.quantity) AS quantity,
			SUM(oi.product_price * oi.quantity) AS revenue,
			COUNT(DISTINCT o.id) AS order_count`).
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Where("o.status IN ?", report.RevenueStatuses).
		Group("oi.product_id").
		Order("quantity DESC, revenue DESC").
		Limit(filter.TopN).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sales top products: %w", err)
	}

	ranking := make([]report.ProductSales, len(rows))
	for i, row := range rows {
		ranking[i] = report.ProductSales{
			Rank:        i + 1,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Revenue:     row.Revenue.Round(2),
			OrderCount:  row.OrderCount,
		}
	}
	return ranking, nil
}

// parseDay reads DATE() output: SQLite returns 2006-01-02, PostgreSQL
// drivers return a timestamp that database/sql formats as RFC 3339.
func parseDay(s string) (time.Time, error) {
	if len(s) < len(time.DateOnly) {
		return time.Time{}, fmt.Errorf("unexpected day value %q", s)
	}
	day, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)])
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected day value %q: %w", s, err)
	}
	return day, nil
}
