package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Slug        string          `json:"slug" binding:"omitempty,max=200,slug"`
	Description string          `json:"description" binding:"max=5000"`
	Price       decimal.Decimal `json:"price" binding:"required,price"`
	Stock       *int            `json:"stock" binding:"omitempty,min=0"`
	IsAvailable *bool           `json:"is_available"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// UpdateProductRequest represents a request to update a product.
// Version, when set, must match the stored version.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Slug          *string          `json:"slug" binding:"omitempty,min=1,max=200,slug"`
	Description   *string          `json:"description" binding:"omitempty,max=5000"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty,price"`
	Stock         *int             `json:"stock" binding:"omitempty,min=0"`
	IsAvailable   *bool            `json:"is_available"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	ClearCategory bool             `json:"clear_category"`
	Version       *int             `json:"version"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	InStock     bool            `json:"in_stock"`
	IsAvailable bool            `json:"is_available"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	ImageKey    string          `json:"image_key,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ProductListFilter represents product list parameters
type ProductListFilter struct {
	Search      string     `form:"search"`
	IsAvailable *bool      `form:"is_available"`
	CategoryID  *uuid.UUID `form:"category_id"`
	CreatedFrom *time.Time `form:"created_from" time_format:"2006-01-02"`
	CreatedTo   *time.Time `form:"created_to" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"min=0"`
	PageSize    int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ==================== Image DTOs ====================

// ImageUploadRequest asks for a presigned upload URL
type ImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

// ImageUploadResponse carries the presigned URL the client PUTs the image to
type ImageUploadResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AttachImageRequest attaches an uploaded object to the product
type AttachImageRequest struct {
	Key string `json:"key" binding:"required,max=500"`
}

// ==================== Category DTOs ====================

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Slug        string `json:"slug" binding:"omitempty,max=100,slug"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Slug        string `json:"slug" binding:"omitempty,max=100,slug"`
	Description string `json:"description" binding:"max=2000"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ==================== Storefront DTOs ====================

// HomeResponse is the landing page: available products and every category
type HomeResponse struct {
	Products   shared.Paginated[ProductResponse] `json:"products"`
	Categories []CategoryResponse                `json:"categories"`
}

// CategoryPageResponse lists the available products of one category
type CategoryPageResponse struct {
	Category   CategoryResponse                  `json:"category"`
	Products   shared.Paginated[ProductResponse] `json:"products"`
	Categories []CategoryResponse                `json:"categories"`
}

// SearchResponse echoes the keyword with its matches
type SearchResponse struct {
	Keyword  string                            `json:"keyword"`
	Products shared.Paginated[ProductResponse] `json:"products"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.InStock(),
		IsAvailable: p.IsAvailable,
		CategoryID:  p.CategoryID,
		ImageKey:    p.ImageKey,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToCategoryResponse converts a domain category to a response DTO
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts domain categories to response DTOs
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	resp := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, ToCategoryResponse(&categories[i]))
	}
	return resp
}
