package catalog

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StorefrontService answers the public catalog pages. Only available
// products are ever returned, ordered by name.
type StorefrontService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	images       ImageStorage
	imageURLTTL  time.Duration
	logger       *zap.Logger
}

// NewStorefrontService creates a new StorefrontService. images may be nil.
func NewStorefrontService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, images ImageStorage, logger *zap.Logger) *StorefrontService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		images:       images,
		imageURLTTL:  time.Hour,
		logger:       logger,
	}
}

// ListProducts is the home page
func (s *StorefrontService) ListProducts(ctx context.Context, filter ProductListFilter) (*HomeResponse, error) {
	products, err := s.availableProducts(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &HomeResponse{Products: products, Categories: categories}, nil
}

// GetProduct returns an available product by slug
func (s *StorefrontService) GetProduct(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, shared.ErrNotFound
	}
	resp := ToProductResponse(product)
	withImageURL(ctx, s.images, s.imageURLTTL, s.logger, &resp)
	return &resp, nil
}

// ListByCategory lists the available products of a category
func (s *StorefrontService) ListByCategory(ctx context.Context, categorySlug string, filter ProductListFilter) (*CategoryPageResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	products, err := s.availableProducts(ctx, filter, func(f *shared.Filter) {
		f.Filters[catalog.FilterCategoryID] = category.ID
	})
	if err != nil {
		return nil, err
	}
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryPageResponse{
		Category:   ToCategoryResponse(category),
		Products:   products,
		Categories: categories,
	}, nil
}

// Search matches the keyword against name or description, as typed: a
// keyword of spaces still searches. An empty keyword matches nothing.
func (s *StorefrontService) Search(ctx context.Context, keyword string, filter ProductListFilter) (*SearchResponse, error) {
	if keyword == "" {
		page, size := pageOf(filter)
		return &SearchResponse{
			Keyword:  keyword,
			Products: shared.NewPaginated([]ProductResponse{}, 0, page, size),
		}, nil
	}
	filter.Search = keyword
	products, err := s.availableProducts(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	return &SearchResponse{Keyword: keyword, Products: products}, nil
}

// ListCategories returns every category ordered by name
func (s *StorefrontService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

func (s *StorefrontService) availableProducts(ctx context.Context, filter ProductListFilter, scope func(*shared.Filter)) (shared.Paginated[ProductResponse], error) {
	filter.OrderBy, filter.OrderDir = "name", "asc"
	domainFilter := productFilter(filter, "name", "asc")
	domainFilter.Filters[catalog.FilterAvailable] = true
	if scope != nil {
		scope(&domainFilter)
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp := ToProductResponse(&products[i])
		withImageURL(ctx, s.images, s.imageURLTTL, s.logger, &resp)
		items = append(items, resp)
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

func pageOf(filter ProductListFilter) (int, int) {
	f := productFilter(filter, "name", "asc")
	return f.Page, f.PageSize
}
