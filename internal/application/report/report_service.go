package report

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/report"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SalesReportRequest is the query of every sales report. Both dates are
// calendar days in UTC and the end day is included.
type SalesReportRequest struct {
	StartDate string `form:"start_date" binding:"required" example:"2026-10-01"`
	EndDate   string `form:"end_date" binding:"required" example:"2026-10-31"`
	TopN      int    `form:"top_n" binding:"omitempty,min=1,max=100"`
}

// Filter converts the request to a validated report filter
func (r SalesReportRequest) Filter() (report.SalesFilter, error) {
	start, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return report.SalesFilter{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return report.SalesFilter{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "end_date must be YYYY-MM-DD")
	}
	filter := report.SalesFilter{From: start, To: end.AddDate(0, 0, 1), TopN: r.TopN}
	if err := filter.Validate(); err != nil {
		return report.SalesFilter{}, err
	}
	return filter, nil
}

// ReportService answers the admin sales reports
type ReportService struct {
	salesRepo report.SalesReportRepository
	logger    *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(salesRepo report.SalesReportRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{salesRepo: salesRepo, logger: logger}
}

// GetSalesSummary returns revenue, order and item totals of the period
func (s *ReportService) GetSalesSummary(ctx context.Context, req SalesReportRequest) (*report.SalesSummary, error) {
	filter, err := req.Filter()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.salesRepo.StatusTotals(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.salesRepo.ItemsSold(ctx, filter)
	if err != nil {
		return nil, err
	}
	return report.Summarize(filter, byStatus, items), nil
}

// GetDailySales returns the per-day trend of the period. Days without
// sales are filled with zeros.
func (s *ReportService) GetDailySales(ctx context.Context, req SalesReportRequest) ([]report.DailySales, error) {
	filter, err := req.Filter()
	if err != nil {
		return nil, err
	}
	days, err := s.salesRepo.DailySales(ctx, filter)
	if err != nil {
		return nil, err
	}
	return fillDays(filter, days), nil
}

// GetTopProducts returns the best sellers of the period
func (s *ReportService) GetTopProducts(ctx context.Context, req SalesReportRequest) ([]report.ProductSales, error) {
	filter, err := req.Filter()
	if err != nil {
		return nil, err
	}
	ranking, err := s.salesRepo.TopProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("top products report",
		zap.Time("from", filter.From),
		zap.Time("to", filter.To),
		zap.Int("rows", len(ranking)))
	return ranking, nil
}

func fillDays(filter report.SalesFilter, days []report.DailySales) []report.DailySales {
	byDay := make(map[string]report.DailySales, len(days))
	for _, d := range days {
		byDay[d.Date.Format(time.DateOnly)] = d
	}
	var filled []report.DailySales
	for day := filter.From; day.Before(filter.To); day = day.AddDate(0, 0, 1) {
		if d, ok := byDay[day.Format(time.DateOnly)]; ok {
			filled = append(filled, d)
			continue
		}
		filled = append(filled, report.DailySales{Date: day})
	}
	return filled
}
