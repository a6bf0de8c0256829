package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/trade"
)

// ==================== Checkout DTOs ====================

// CheckoutRequest is the shipping/contact form submitted at checkout
type CheckoutRequest struct {
	FirstName    string `json:"first_name" binding:"required,max=50"`
	LastName     string `json:"last_name" binding:"required,max=50"`
	Phone        string `json:"phone" binding:"required,max=15"`
	Email        string `json:"email" binding:"required,email,max=50"`
	AddressLine1 string `json:"address_line_1" binding:"required,max=50"`
	City         string `json:"city" binding:"required,max=50"`
	Country      string `json:"country" binding:"required,max=50"`
}

// ShippingDetails converts the form into the domain value
func (r CheckoutRequest) ShippingDetails() trade.ShippingDetails {
	return trade.ShippingDetails{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		Email:        r.Email,
		AddressLine1: r.AddressLine1,
		City:         r.City,
		Country:      r.Country,
	}
}

// ==================== Order DTOs ====================

// OrderItemResponse is one line of an order
type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	SubTotal     decimal.Decimal `json:"sub_total"`
}

// OrderResponse is the full order with its items
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	UserID       uuid.UUID           `json:"user_id"`
	FirstName    string              `json:"first_name"`
	LastName     string              `json:"last_name"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email"`
	AddressLine1 string              `json:"address_line_1"`
	City         string              `json:"city"`
	Country      string              `json:"country"`
	OrderTotal   decimal.Decimal     `json:"order_total"`
	SubTotal     decimal.Decimal     `json:"sub_total"`
	Status       string              `json:"status"`
	IsOrdered    bool                `json:"is_ordered"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// OrderListItemResponse is an order row in list views
type OrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserID      uuid.UUID       `json:"user_id"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	OrderTotal  decimal.Decimal `json:"order_total"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderListFilter represents admin and customer order list parameters
type OrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=New Accepted Completed Cancelled Refunded"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CancelAndRestockRequest selects the orders of the bulk cancel action
type CancelAndRestockRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1,max=100"`
}

// SkippedOrder is an order the bulk action left untouched
type SkippedOrder struct {
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
}

// CancelAndRestockResult reports what the bulk action did
type CancelAndRestockResult struct {
	Cancelled []string       `json:"cancelled"`
	Skipped   []SkippedOrder `json:"skipped"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	subTotal := decimal.Zero
	for _, item := range o.Items {
		line := item.SubTotal()
		subTotal = subTotal.Add(line)
		items = append(items, OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			SubTotal:     line,
		})
	}
	return OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		UserID:       o.UserID,
		FirstName:    o.Shipping.FirstName,
		LastName:     o.Shipping.LastName,
		Phone:        o.Shipping.Phone,
		Email:        o.Shipping.Email,
		AddressLine1: o.Shipping.AddressLine1,
		City:         o.Shipping.City,
		Country:      o.Shipping.Country,
		OrderTotal:   o.OrderTotal,
		SubTotal:     subTotal,
		Status:       o.Status.String(),
		IsOrdered:    o.IsOrdered,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.Version,
	}
}

// ToOrderListItemResponses converts domain orders to list rows
func ToOrderListItemResponses(orders []trade.Order) []OrderListItemResponse {
	rows := make([]OrderListItemResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		rows = append(rows, OrderListItemResponse{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			UserID:      o.UserID,
			FullName:    o.Shipping.FullName(),
			Email:       o.Shipping.Email,
			OrderTotal:  o.OrderTotal,
			Status:      o.Status.String(),
			ItemCount:   o.ItemCount(),
			CreatedAt:   o.CreatedAt,
		})
	}
	return rows
}
