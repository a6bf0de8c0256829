package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/trade"
)

// AdminOrderHandler handles the admin order endpoints
type AdminOrderHandler struct {
	BaseHandler
	orderService *trade.OrderService
}

// NewAdminOrderHandler creates a new AdminOrderHandler
func NewAdminOrderHandler(orderService *trade.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{orderService: orderService}
}

// List godoc
// @ID           adminListOrders
// @Summary      List orders
// @Tags         admin-orders
// @Produce      json
// @Param        search query string false "Order number, name or email"
// @Param        status query string false "Status filter" Enums(New, Accepted, Completed, Cancelled, Refunded)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]trade.OrderListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *AdminOrderHandler) List(c *gin.Context) {
	var filter trade.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           adminGetOrder
// @Summary      Get an order
// @Tags         admin-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *AdminOrderHandler) GetByID(c *gin.Context) {
	h.withOrder(c, h.orderService.GetByID)
}

// Accept godoc
// @ID           adminAcceptOrder
// @Summary      Accept an order
// @Description  New to Accepted
// @Tags         admin-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/accept [post]
func (h *AdminOrderHandler) Accept(c *gin.Context) {
	h.withOrder(c, h.orderService.Accept)
}

// Complete godoc
// @ID           adminCompleteOrder
// @Summary      Complete an order
// @Description  Accepted to Completed
// @Tags         admin-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/complete [post]
func (h *AdminOrderHandler) Complete(c *gin.Context) {
	h.withOrder(c, h.orderService.Complete)
}

// Refund godoc
// @ID           adminRefundOrder
// @Summary      Refund an order
// @Description  Completed to Refunded
// @Tags         admin-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/refund [post]
func (h *AdminOrderHandler) Refund(c *gin.Context) {
	h.withOrder(c, h.orderService.Refund)
}

// Cancel godoc
// @ID           adminCancelOrder
// @Summary      Cancel an order
// @Description  New or Accepted to Cancelled. The ordered quantities go back to stock.
// @Tags         admin-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/cancel [post]
func (h *AdminOrderHandler) Cancel(c *gin.Context) {
	h.withOrder(c, h.orderService.Cancel)
}

// CancelAndRestock godoc
// @ID           adminCancelAndRestockOrders
// @Summary      Cancel and restock orders
// @Description  Each order is cancelled and restocked in its own transaction. Orders that cannot be cancelled are skipped with a reason.
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        request body trade.CancelAndRestockRequest true "Orders"
// @Success      200 {object} APIResponse[trade.CancelAndRestockResult]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/cancel-and-restock [post]
func (h *AdminOrderHandler) CancelAndRestock(c *gin.Context) {
	var req trade.CancelAndRestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.CancelAndRestock(c.Request.Context(), req.OrderIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *AdminOrderHandler) withOrder(c *gin.Context, fn func(context.Context, uuid.UUID) (*trade.OrderResponse, error)) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
