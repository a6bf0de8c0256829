package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
)

// CartLineResponse is one active cart item priced at the current product price
type CartLineResponse struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductSlug string          `json:"product_slug"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Quantity    int             `json:"quantity"`
	SubTotal    decimal.Decimal `json:"sub_total"`
}

// CartView is the cart page: active lines, total price and total quantity
type CartView struct {
	Items    []CartLineResponse `json:"items"`
	Total    decimal.Decimal    `json:"total"`
	Quantity int                `json:"quantity"`
}

// CartItemResponse is a cart item in admin views
type CartItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CartResponse is a cart in admin views
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	SessionID string             `json:"session_id"`
	Items     []CartItemResponse `json:"items"`
	Count     int                `json:"count"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CartListFilter represents admin cart list parameters
type CartListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// SetItemActiveRequest toggles a cart item
type SetItemActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func emptyView() *CartView {
	return &CartView{Items: []CartLineResponse{}, Total: decimal.Zero}
}

func toView(lines []cart.Line) *CartView {
	view := emptyView()
	for _, l := range lines {
		view.Items = append(view.Items, CartLineResponse{
			ItemID:      l.Item.ID,
			ProductID:   l.Product.ID,
			ProductSlug: l.Product.Slug,
			ProductName: l.Product.Name,
			Price:       l.Product.Price,
			Stock:       l.Product.Stock,
			Quantity:    l.Item.Quantity,
			SubTotal:    l.SubTotal(),
		})
	}
	view.Total, view.Quantity = cart.Totals(lines)
	return view
}

// ToCartResponse converts a domain cart to the admin DTO
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			IsActive:  item.IsActive,
			CreatedAt: item.CreatedAt,
		})
	}
	return CartResponse{
		ID:        c.ID,
		SessionID: c.SessionID,
		Items:     items,
		Count:     c.Count(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
