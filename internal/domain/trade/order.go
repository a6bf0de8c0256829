// Package trade holds orders placed through checkout and their lifecycle.
package trade

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ShippingDetails is the contact and delivery information captured at checkout
type ShippingDetails struct {
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	AddressLine1 string
	City         string
	Country      string
}

// Validate checks required fields and column limits
func (d ShippingDetails) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"first_name", d.FirstName, 50},
		{"last_name", d.LastName, 50},
		{"phone", d.Phone, 15},
		{"email", d.Email, 50},
		{"address_line_1", d.AddressLine1, 50},
		{"city", d.City, 50},
		{"country", d.Country, 50},
	}
	for _, f := range fields {
		if f.value == "" {
			return shared.NewDomainError("INVALID_INPUT", f.name+" is required")
		}
		if len([]rune(f.value)) > f.max {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s cannot exceed %d characters", f.name, f.max))
		}
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return shared.NewDomainError("INVALID_INPUT", "email is not a valid address")
	}
	return nil
}

// FullName joins first and last name
func (d ShippingDetails) FullName() string {
	return d.FirstName + " " + d.LastName
}

// OrderItem is a purchased line with the price captured at checkout
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int
	IsOrdered    bool
	CreatedAt    time.Time
}

// SubTotal returns the snapshot price times quantity
func (i OrderItem) SubTotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate root of a placed order
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber string
	UserID      uuid.UUID
	Shipping    ShippingDetails
	OrderTotal  decimal.Decimal
	Status      OrderStatus
	IsOrdered   bool
	Items       []OrderItem
}

// NewOrder creates a New order for userID with a fresh order number
func NewOrder(userID uuid.UUID, shipping ShippingDetails) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Order must belong to a user")
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}
	number, err := NewOrderNumber()
	if err != nil {
		return nil, err
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       number,
		UserID:            userID,
		Shipping:          shipping,
		OrderTotal:        decimal.Zero,
		Status:            OrderStatusNew,
		Items:             make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line priced at the product's current price
func (o *Order) AddItem(productID uuid.UUID, productName string, price decimal.Decimal, quantity int) error {
	if o.IsOrdered {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a placed order")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	o.Items = append(o.Items, OrderItem{
		ID:           uuid.New(),
		OrderID:      o.ID,
		ProductID:    productID,
		ProductName:  productName,
		ProductPrice: price,
		Quantity:     quantity,
		CreatedAt:    time.Now(),
	})
	o.recalculateTotal()
	return nil
}

// Place marks the order and its items as ordered
func (o *Order) Place() error {
	if o.IsOrdered {
		return shared.NewDomainError("INVALID_STATE", "Order has already been placed")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot place an order without items")
	}
	o.IsOrdered = true
	for i := range o.Items {
		o.Items[i].IsOrdered = true
	}
	o.Touch()
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// Accept moves a New order to Accepted
func (o *Order) Accept() error {
	return o.transition(OrderStatusAccepted)
}

// Complete moves an Accepted order to Completed
func (o *Order) Complete() error {
	return o.transition(OrderStatusCompleted)
}

// Refund moves a Completed order to Refunded. Stock is not touched.
func (o *Order) Refund() error {
	return o.transition(OrderStatusRefunded)
}

// Cancel moves the order to Cancelled. The caller restocks the items
// returned by RestockLines inside the same transaction.
func (o *Order) Cancel(reason string) error {
	if err := o.transition(OrderStatusCancelled); err != nil {
		return err
	}
	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))
	return nil
}

// CanCancel reports whether Cancel would succeed
func (o *Order) CanCancel() bool {
	return o.Status.CanTransitionTo(OrderStatusCancelled)
}

// RestockLines returns the product quantities to put back on cancellation
func (o *Order) RestockLines() map[uuid.UUID]int {
	lines := make(map[uuid.UUID]int, len(o.Items))
	for _, item := range o.Items {
		lines[item.ProductID] += item.Quantity
	}
	return lines
}

// ItemCount is the number of units ordered
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

func (o *Order) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change order %s from %s to %s", o.OrderNumber, o.Status, target))
	}
	from := o.Status
	o.Status = target
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.SubTotal())
	}
	o.OrderTotal = total.Round(2)
}
