package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrImagesDisabled is returned by image operations when no storage is configured
var ErrImagesDisabled = shared.NewDomainError("IMAGES_DISABLED", "Product image storage is not configured")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ProductService handles admin product operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	images         ImageStorage
	imageURLTTL    time.Duration
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService. images may be nil.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	images ImageStorage,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		images:       images,
		imageURLTTL:  time.Hour,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Name)
	}
	if err := s.ensureSlugFree(ctx, slug); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, slug, req.Price)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.CategoryID = req.CategoryID
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
		}
		product.Stock = *req.Stock
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	return s.respond(ctx, product), nil
}

// GetByID retrieves any product, available or not
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, product), nil
}

// List lists products with search over name and description
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := productFilter(filter, "created_at", "desc")
	if filter.IsAvailable != nil {
		domainFilter.Filters[catalog.FilterAvailable] = *filter.IsAvailable
	}
	if filter.CategoryID != nil {
		domainFilter.Filters[catalog.FilterCategoryID] = *filter.CategoryID
	}
	if filter.CreatedFrom != nil {
		domainFilter.Filters[catalog.FilterCreatedFrom] = *filter.CreatedFrom
	}
	if filter.CreatedTo != nil {
		domainFilter.Filters[catalog.FilterCreatedTo] = *filter.CreatedTo
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, *s.respond(ctx, &products[i]))
	}
	return resp, total, nil
}

// Update applies the non-nil fields of req
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != product.Version {
		return nil, shared.ErrConcurrencyConflict
	}

	if req.Name != nil || req.Description != nil {
		name, description := product.Name, product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.Slug != nil && *req.Slug != product.Slug {
		if err := s.ensureSlugFree(ctx, *req.Slug); err != nil {
			return nil, err
		}
		if err := product.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.IsAvailable != nil {
		product.SetAvailability(*req.IsAvailable)
	}
	switch {
	case req.ClearCategory:
		product.SetCategory(nil)
	case req.CategoryID != nil:
		if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	return s.respond(ctx, product), nil
}

// Delete deletes a product. Its image is removed by the ProductDeleted handler.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	product.ClearDomainEvents()
	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publish(ctx, product)
	return nil
}

// RequestImageUpload issues a presigned PUT URL under the product's key prefix
func (s *ProductService) RequestImageUpload(ctx context.Context, productID uuid.UUID, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if s.images == nil {
		return nil, ErrImagesDisabled
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	ext, ok := imageExtensions[req.ContentType]
	if !ok {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unsupported image type "+req.ContentType)
	}

	base := catalog.Slugify(strings.TrimSuffix(req.FileName, path.Ext(req.FileName)))
	if base == "" {
		base = "image"
	}
	key := fmt.Sprintf("%s%s-%s%s", imageKeyPrefix(productID), base, uuid.NewString()[:8], ext)

	url, expiresAt, err := s.images.GenerateUploadURL(ctx, key, req.ContentType, 0)
	if err != nil {
		return nil, err
	}
	return &ImageUploadResponse{Key: key, UploadURL: url, ExpiresAt: expiresAt}, nil
}

// AttachImage makes an uploaded object the product image, replacing any previous one
func (s *ProductService) AttachImage(ctx context.Context, productID uuid.UUID, req AttachImageRequest) (*ProductResponse, error) {
	if s.images == nil {
		return nil, ErrImagesDisabled
	}
	if !strings.HasPrefix(req.Key, imageKeyPrefix(productID)) {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Image key does not belong to this product")
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	exists, err := s.images.ObjectExists(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Image has not been uploaded")
	}

	previous := product.ImageKey
	product.SetImage(req.Key)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if previous != "" && previous != req.Key {
		s.deleteImage(ctx, previous)
	}
	return s.respond(ctx, product), nil
}

// RemoveImage detaches and deletes the product image
func (s *ProductService) RemoveImage(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.HasImage() {
		return s.respond(ctx, product), nil
	}
	previous := product.ImageKey
	product.SetImage("")
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.deleteImage(ctx, previous)
	return s.respond(ctx, product), nil
}

func (s *ProductService) deleteImage(ctx context.Context, key string) {
	if s.images == nil {
		return
	}
	if err := s.images.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("failed to delete product image", zap.String("key", key), zap.Error(err))
	}
}

func (s *ProductService) ensureSlugFree(ctx context.Context, slug string) error {
	exists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "Product with this slug already exists")
	}
	return nil
}

func (s *ProductService) ensureCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.ErrInvalidInput.Code, "Category not found")
		}
		return err
	}
	return nil
}

func (s *ProductService) respond(ctx context.Context, p *catalog.Product) *ProductResponse {
	resp := ToProductResponse(p)
	withImageURL(ctx, s.images, s.imageURLTTL, s.logger, &resp)
	return &resp
}

func (s *ProductService) publish(ctx context.Context, p *catalog.Product) {
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, p.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish product events",
				zap.String("product_id", p.ID.String()), zap.Error(err))
		}
	}
	p.ClearDomainEvents()
}

func imageKeyPrefix(productID uuid.UUID) string {
	return "products/" + productID.String() + "/"
}

// withImageURL fills ImageURL with a presigned download URL when the product has an image
func withImageURL(ctx context.Context, images ImageStorage, ttl time.Duration, logger *zap.Logger, resp *ProductResponse) {
	if images == nil || resp.ImageKey == "" {
		return
	}
	url, _, err := images.GenerateDownloadURL(ctx, resp.ImageKey, ttl)
	if err != nil {
		logger.Warn("failed to presign product image", zap.String("key", resp.ImageKey), zap.Error(err))
		return
	}
	resp.ImageURL = url
}

func productFilter(filter ProductListFilter, orderBy, orderDir string) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = orderBy
	}
	if filter.OrderDir == "" {
		filter.OrderDir = orderDir
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}
