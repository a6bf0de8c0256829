package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	MaxProductNameLength = 200
	MaxProductSlugLength = 200
	DefaultProductStock  = 1
)

// MaxPrice is the largest price a product column can hold (6 digits, 2 decimals)
var MaxPrice = decimal.RequireFromString("9999.99")

// ErrProductUnavailable is returned when a product is withdrawn from sale.
var ErrProductUnavailable = shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")

// Product is a sellable item of the storefront catalog
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	Stock       int
	IsAvailable bool
	CategoryID  *uuid.UUID
	ImageKey    string
}

// NewProduct creates an available product with the default stock of one.
// An empty slug is derived from the name.
func NewProduct(name, slug string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if slug == "" {
		slug = Slugify(name)
	}
	if err := validateSlug(slug, MaxProductSlugLength); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Price:             price.Round(2),
		Stock:             DefaultProductStock,
		IsAvailable:       true,
	}
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

// Update changes the product's name and description
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// SetSlug replaces the slug; uniqueness is checked by the caller
func (p *Product) SetSlug(slug string) error {
	if err := validateSlug(slug, MaxProductSlugLength); err != nil {
		return err
	}
	p.Slug = slug
	p.IncrementVersion()
	return nil
}

// SetPrice changes the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	if p.Price.Equal(price) {
		return nil
	}
	old := p.Price
	p.Price = price.Round(2)
	p.IncrementVersion()
	p.AddDomainEvent(NewProductPriceChangedEvent(p, old))
	return nil
}

// SetStock overwrites the stock level (admin correction)
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.IncrementVersion()
	return nil
}

// SetAvailability toggles whether the product is listed and purchasable
func (p *Product) SetAvailability(available bool) {
	if p.IsAvailable == available {
		return
	}
	p.IsAvailable = available
	p.IncrementVersion()
}

// SetCategory assigns the product to a category; nil clears it
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.IncrementVersion()
}

// SetImage records the object storage key of the product image
func (p *Product) SetImage(key string) {
	p.ImageKey = key
	p.IncrementVersion()
}

// HasImage reports whether an image has been attached
func (p *Product) HasImage() bool {
	return p.ImageKey != ""
}

// InStock reports whether at least one unit is left
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// CanSupply reports whether quantity units can be taken from stock
func (p *Product) CanSupply(quantity int) bool {
	return quantity > 0 && quantity <= p.Stock
}

// LineTotal returns price times quantity
func (p *Product) LineTotal(quantity int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len([]rune(name)) > MaxProductNameLength {
		return shared.NewDomainError("INVALID_NAME", fmt.Sprintf("Product name cannot exceed %d characters", MaxProductNameLength))
	}
	return nil
}

// IsValidPrice reports whether price fits the price column
func IsValidPrice(price decimal.Decimal) bool {
	return validatePrice(price) == nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if price.GreaterThan(MaxPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot exceed "+MaxPrice.StringFixed(2))
	}
	if !price.Equal(price.Round(2)) {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot have more than 2 decimal places")
	}
	return nil
}
