package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
)

// AdminCartHandler lets staff inspect carts
type AdminCartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewAdminCartHandler creates a new AdminCartHandler
func NewAdminCartHandler(cartService *cartapp.CartService) *AdminCartHandler {
	return &AdminCartHandler{cartService: cartService}
}

// List godoc
// @ID           adminListCarts
// @Summary      List carts
// @Tags         admin-carts
// @Produce      json
// @Param        search query string false "Session ID"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/carts [get]
func (h *AdminCartHandler) List(c *gin.Context) {
	var filter cartapp.CartListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	carts, total, err := h.cartService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, carts, total, filter.Page, filter.PageSize)
}

// SetItemActive godoc
// @ID           adminSetCartItemActive
// @Summary      Activate or deactivate a cart item
// @Description  Inactive items are left out of the cart view, the counter and checkout
// @Tags         admin-carts
// @Accept       json
// @Produce      json
// @Param        id path string true "Cart item ID" format(uuid)
// @Param        request body cartapp.SetItemActiveRequest true "Active flag"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/cart-items/{id} [patch]
func (h *AdminCartHandler) SetItemActive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	var req cartapp.SetItemActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.cartService.SetItemActive(c.Request.Context(), id, *req.IsActive); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}
