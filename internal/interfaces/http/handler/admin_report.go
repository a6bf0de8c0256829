package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/storefront/backend/internal/application/report"
)

// ReportHandler handles the admin sales reports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSalesSummary godoc
// @ID           adminSalesSummary
// @Summary      Sales summary
// @Description  Revenue, order count and items sold of the period. Cancelled and refunded orders only appear in by_status.
// @Tags         admin-reports
// @Produce      json
// @Param        start_date query string true "First day (YYYY-MM-DD)"
// @Param        end_date query string true "Last day, included (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[report.SalesSummary]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/reports/sales/summary [get]
func (h *ReportHandler) GetSalesSummary(c *gin.Context) {
	var req reportapp.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	summary, err := h.reportService.GetSalesSummary(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetDailySales godoc
// @ID           adminSalesDaily
// @Summary      Daily sales trend
// @Description  One entry per day of the period, zero-filled
// @Tags         admin-reports
// @Produce      json
// @Param        start_date query string true "First day (YYYY-MM-DD)"
// @Param        end_date query string true "Last day, included (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]report.DailySales]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/reports/sales/daily [get]
func (h *ReportHandler) GetDailySales(c *gin.Context) {
	var req reportapp.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	days, err := h.reportService.GetDailySales(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, days)
}

// GetTopProducts godoc
// @ID           adminSalesTopProducts
// @Summary      Best-selling products
// @Tags         admin-reports
// @Produce      json
// @Param        start_date query string true "First day (YYYY-MM-DD)"
// @Param        end_date query string true "Last day, included (YYYY-MM-DD)"
// @Param        top_n query int false "Number of products" default(10) maximum(100)
// @Success      200 {object} APIResponse[[]report.ProductSales]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/reports/sales/top-products [get]
func (h *ReportHandler) GetTopProducts(c *gin.Context) {
	var req reportapp.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ranking, err := h.reportService.GetTopProducts(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ranking)
}
