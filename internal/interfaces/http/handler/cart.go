package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CartHandler serves the session cart
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// View godoc
// @ID           viewCart
// @Summary      View cart
// @Description  Active items priced at the current product price. A session without a cart gets an empty view.
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[cartapp.CartView]
// @Router       /cart [get]
func (h *CartHandler) View(c *gin.Context) {
	view, err := h.cartService.View(c.Request.Context(), middleware.GetCartSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Count godoc
// @ID           countCart
// @Summary      Cart counter
// @Description  Total quantity of the active items in the session cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[CountData]
// @Router       /cart/count [get]
func (h *CartHandler) Count(c *gin.Context) {
	count, err := h.cartService.Count(c.Request.Context(), middleware.GetCartSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountData{Count: count})
}

// Add godoc
// @ID           addCartItem
// @Summary      Add one unit to the cart
// @Description  Creates the cart on first use. Fails when the product is out of stock or the cart already holds every unit in stock.
// @Tags         cart
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[cartapp.CartView]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cart/items/{slug} [post]
func (h *CartHandler) Add(c *gin.Context) {
	view, err := h.cartService.Add(c.Request.Context(), middleware.GetCartSessionID(c), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Decrease godoc
// @ID           decreaseCartItem
// @Summary      Remove one unit from the cart
// @Description  An item at quantity one is removed. Missing items are ignored.
// @Tags         cart
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[cartapp.CartView]
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items/{slug}/decrease [post]
func (h *CartHandler) Decrease(c *gin.Context) {
	view, err := h.cartService.Decrease(c.Request.Context(), middleware.GetCartSessionID(c), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Remove godoc
// @ID           removeCartItem
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[cartapp.CartView]
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items/{slug} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	view, err := h.cartService.Remove(c.Request.Context(), middleware.GetCartSessionID(c), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
