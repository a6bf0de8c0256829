package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// maxIdempotencyKeyLength bounds the Idempotency-Key header
const maxIdempotencyKeyLength = 255

// CheckoutHandler places orders from the session cart
type CheckoutHandler struct {
	BaseHandler
	cartService     *cartapp.CartService
	checkoutService *trade.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(cartService *cartapp.CartService, checkoutService *trade.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{cartService: cartService, checkoutService: checkoutService}
}

// Checkout godoc
// @ID           checkout
// @Summary      Place an order
// @Description  Turns the session cart into an order in one transaction: stock is deducted and the cart is cleared.
// @Description  Without an Idempotency-Key an empty cart is reported before the form is validated. Retrying with the same key returns the first order, even though the cart is now empty.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client generated key making retries safe"
// @Param        request body trade.CheckoutRequest true "Shipping and contact details"
// @Success      201 {object} APIResponse[trade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sessionID := middleware.GetCartSessionID(c)

	key := c.GetHeader(middleware.IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}

	// A keyed retry finds the cart already emptied by the first attempt, so
	// the service decides: it replays the stored order or reports CART_EMPTY.
	if key == "" {
		count, err := h.cartService.Count(c.Request.Context(), sessionID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if count == 0 {
			h.HandleError(c, cart.ErrCartEmpty)
			return
		}
	}

	var req trade.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, sessionID, req, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}
