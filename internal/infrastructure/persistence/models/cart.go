package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
)

// CartModel is the persistence model for a session cart.
type CartModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	SessionID string          `gorm:"column:cart_id;type:varchar(250);not null;uniqueIndex"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null;index"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// ToDomain converts the persistence model to a domain Cart.
func (m *CartModel) ToDomain() *cart.Cart {
	c := &cart.Cart{
		ID:        m.ID,
		SessionID: m.SessionID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Items:     make([]cart.Item, 0, len(m.Items)),
	}
	for i := range m.Items {
		c.Items = append(c.Items, m.Items[i].ToDomain())
	}
	return c
}

// CartModelFromDomain creates a persistence model without items.
func CartModelFromDomain(c *cart.Cart) *CartModel {
	return &CartModel{
		ID:        c.ID,
		SessionID: c.SessionID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CartItemModel is the persistence model for one cart line.
type CartItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product,priority:2"`
	Quantity  int       `gorm:"not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain cart Item.
func (m *CartItemModel) ToDomain() cart.Item {
	return cart.Item{
		ID:        m.ID,
		CartID:    m.CartID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// CartItemModelFromDomain creates a persistence model for a cart item.
func CartItemModelFromDomain(item cart.Item) CartItemModel {
	return CartItemModel{
		ID:        item.ID,
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		IsActive:  item.IsActive,
		CreatedAt: item.CreatedAt,
	}
}
