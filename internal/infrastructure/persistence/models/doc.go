// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel and AggregateModel shared by every table
// - catalog.go: products and categories
// - cart.go: carts and cart items
// - trade.go: orders and order items
// - identity.go: users
package models
