package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	OrderNumber  string            `gorm:"type:varchar(20);not null;uniqueIndex"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	FirstName    string            `gorm:"type:varchar(50);not null"`
	LastName     string            `gorm:"type:varchar(50);not null"`
	Phone        string            `gorm:"type:varchar(15);not null"`
	Email        string            `gorm:"type:varchar(50);not null"`
	AddressLine1 string            `gorm:"column:address_line_1;type:varchar(50);not null"`
	City         string            `gorm:"type:varchar(50);not null"`
	Country      string            `gorm:"type:varchar(50);not null"`
	OrderTotal   decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	Status       trade.OrderStatus `gorm:"type:varchar(10);not null;default:'New';index"`
	IsOrdered    bool              `gorm:"not null;default:false"`
	Items        []OrderItemModel  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		UserID:            m.UserID,
		Shipping: trade.ShippingDetails{
			FirstName:    m.FirstName,
			LastName:     m.LastName,
			Phone:        m.Phone,
			Email:        m.Email,
			AddressLine1: m.AddressLine1,
			City:         m.City,
			Country:      m.Country,
		},
		OrderTotal: m.OrderTotal,
		Status:     m.Status,
		IsOrdered:  m.IsOrdered,
		Items:      make([]trade.OrderItem, 0, len(m.Items)),
	}
	for i := range m.Items {
		o.Items = append(o.Items, m.Items[i].ToDomain())
	}
	return o
}

// FromDomain populates the persistence model, including items, from a domain Order.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.UserID = o.UserID
	m.FirstName = o.Shipping.FirstName
	m.LastName = o.Shipping.LastName
	m.Phone = o.Shipping.Phone
	m.Email = o.Shipping.Email
	m.AddressLine1 = o.Shipping.AddressLine1
	m.City = o.Shipping.City
	m.Country = o.Shipping.Country
	m.OrderTotal = o.OrderTotal
	m.Status = o.Status
	m.IsOrdered = o.IsOrdered
	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for _, item := range o.Items {
		m.Items = append(m.Items, OrderItemModelFromDomain(item))
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for a purchased line.
type OrderItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity     int             `gorm:"not null"`
	IsOrdered    bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		ProductPrice: m.ProductPrice,
		Quantity:     m.Quantity,
		IsOrdered:    m.IsOrdered,
		CreatedAt:    m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model for an order item.
func OrderItemModelFromDomain(item trade.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:           item.ID,
		OrderID:      item.OrderID,
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductPrice: item.ProductPrice,
		Quantity:     item.Quantity,
		IsOrdered:    item.IsOrdered,
		CreatedAt:    item.CreatedAt,
	}
}
