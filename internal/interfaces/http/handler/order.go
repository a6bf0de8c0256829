package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/application/trade"
)

// OrderHandler serves the customer's own orders
type OrderHandler struct {
	BaseHandler
	orderService *trade.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *trade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// MyOrders godoc
// @ID           listMyOrders
// @Summary      My orders
// @Description  Placed orders of the current user, newest first
// @Tags         orders
// @Produce      json
// @Param        status query string false "Status filter" Enums(New, Accepted, Completed, Cancelled, Refunded)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]trade.OrderListItemResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var filter trade.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.MyOrders(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// OrderDetail godoc
// @ID           getMyOrder
// @Summary      Order detail
// @Description  One of the current user's orders with its items. Orders of other users are not found.
// @Tags         orders
// @Produce      json
// @Param        number path string true "Order number"
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{number} [get]
func (h *OrderHandler) OrderDetail(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.orderService.OrderDetail(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// OrderComplete godoc
// @ID           getMyOrderConfirmation
// @Summary      Order confirmation
// @Description  The confirmation page shown after checkout
// @Tags         orders
// @Produce      json
// @Param        number path string true "Order number"
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{number}/complete [get]
func (h *OrderHandler) OrderComplete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.orderService.OrderComplete(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
