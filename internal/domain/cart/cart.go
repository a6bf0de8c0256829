// Package cart models the anonymous shopping cart bound to a browser session.
package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// MaxSessionIDLength bounds the session identifier column
const MaxSessionIDLength = 250

// Cart errors surfaced to shoppers
var (
	ErrOutOfStock        = shared.NewDomainError("OUT_OF_STOCK", "Product is currently out of stock")
	ErrStockLimitReached = shared.NewDomainError("STOCK_LIMIT_REACHED", "No more units of this product are available")
	ErrCartEmpty         = shared.NewDomainError("CART_EMPTY", "Your cart is empty")
	ErrInvalidSession    = shared.NewDomainError("INVALID_SESSION", "Cart session identifier is invalid")
)

// Cart is the per-session container of cart items
type Cart struct {
	ID        uuid.UUID
	SessionID string
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []Item
}

// Item is one product line of a cart
type Item struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	IsActive  bool
	CreatedAt time.Time
}

// NewCart creates an empty cart for a session
func NewCart(sessionID string) (*Cart, error) {
	if sessionID == "" || len(sessionID) > MaxSessionIDLength {
		return nil, ErrInvalidSession
	}
	now := time.Now()
	return &Cart{
		ID:        uuid.New(),
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// FindItem returns the item holding productID, or nil
func (c *Cart) FindItem(productID uuid.UUID) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Add puts one more unit of product into the cart. The quantity of an
// existing item never exceeds the product's stock; a new item needs stock.
// It returns the resulting item.
func (c *Cart) Add(product *catalog.Product) (*Item, error) {
	if item := c.FindItem(product.ID); item != nil {
		if item.Quantity >= product.Stock {
			return nil, shared.NewDomainError(ErrStockLimitReached.Code,
				fmt.Sprintf("Sorry, only %d items of %s are available in stock.", product.Stock, product.Name))
		}
		item.Quantity++
		c.UpdatedAt = time.Now()
		return item, nil
	}

	if !product.InStock() {
		return nil, shared.NewDomainError(ErrOutOfStock.Code,
			fmt.Sprintf("%s is currently out of stock.", product.Name))
	}
	c.Items = append(c.Items, Item{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: product.ID,
		Quantity:  1,
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	c.UpdatedAt = time.Now()
	return &c.Items[len(c.Items)-1], nil
}

// Decrease takes one unit of productID out of the cart and drops the item
// when its last unit goes. removed reports whether the item was dropped.
// A product that is not in the cart is ignored.
func (c *Cart) Decrease(productID uuid.UUID) (item *Item, removed bool) {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if c.Items[i].Quantity > 1 {
			c.Items[i].Quantity--
			c.UpdatedAt = time.Now()
			return &c.Items[i], false
		}
		dropped := c.Items[i]
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		c.UpdatedAt = time.Now()
		return &dropped, true
	}
	return nil, false
}

// Remove drops the item of productID entirely, returning it if present
func (c *Cart) Remove(productID uuid.UUID) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			dropped := c.Items[i]
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return &dropped
		}
	}
	return nil
}

// ActiveItems returns the items that count towards totals and checkout
func (c *Cart) ActiveItems() []Item {
	active := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active
}

// Count is the number of units across active items
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		if item.IsActive {
			n += item.Quantity
		}
	}
	return n
}

// Line pairs an active cart item with its current product
type Line struct {
	Item    Item
	Product catalog.Product
}

// SubTotal is the current price times quantity
func (l Line) SubTotal() decimal.Decimal {
	return l.Product.LineTotal(l.Item.Quantity)
}

// Totals sums the money and unit totals of lines
func Totals(lines []Line) (total decimal.Decimal, quantity int) {
	total = decimal.Zero
	for _, l := range lines {
		total = total.Add(l.SubTotal())
		quantity += l.Item.Quantity
	}
	return total, quantity
}
