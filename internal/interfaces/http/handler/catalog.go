package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CatalogHandler serves the public storefront pages
type CatalogHandler struct {
	BaseHandler
	storefront *catalogapp.StorefrontService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(storefront *catalogapp.StorefrontService) *CatalogHandler {
	return &CatalogHandler{storefront: storefront}
}

// storefrontPage is the paging subset of the product filter the public
// pages accept. Availability and ordering are fixed by the storefront.
type storefrontPage struct {
	Page     int `form:"page" binding:"min=0"`
	PageSize int `form:"page_size" binding:"min=0,max=100"`
}

func (h *CatalogHandler) bindPage(c *gin.Context) (catalogapp.ProductListFilter, bool) {
	var page storefrontPage
	if err := c.ShouldBindQuery(&page); err != nil {
		h.BindError(c, err)
		return catalogapp.ProductListFilter{}, false
	}
	return catalogapp.ProductListFilter{Page: page.Page, PageSize: page.PageSize}, true
}

// ListProducts godoc
// @ID           listStorefrontProducts
// @Summary      Home page
// @Description  Available products ordered by name together with every category
// @Tags         catalog
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[catalogapp.HomeResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter, ok := h.bindPage(c)
	if !ok {
		return
	}
	resp, err := h.storefront.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetProduct godoc
// @ID           getStorefrontProduct
// @Summary      Product detail
// @Description  An available product by slug. Unavailable products are not found.
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{slug} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	resp, err := h.storefront.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListCategories godoc
// @ID           listStorefrontCategories
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.CategoryResponse]
// @Router       /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.storefront.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByCategory godoc
// @ID           listStorefrontCategoryProducts
// @Summary      Category page
// @Description  Available products of one category
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Category slug"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[catalogapp.CategoryPageResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/categories/{slug}/products [get]
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	filter, ok := h.bindPage(c)
	if !ok {
		return
	}
	resp, err := h.storefront.ListByCategory(c.Request.Context(), c.Param("slug"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Search godoc
// @ID           searchStorefront
// @Summary      Search products
// @Description  Matches the keyword against product name or description. An empty keyword returns no products.
// @Tags         catalog
// @Produce      json
// @Param        keyword query string false "Search keyword"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[catalogapp.SearchResponse]
// @Router       /catalog/search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	filter, ok := h.bindPage(c)
	if !ok {
		return
	}
	resp, err := h.storefront.Search(c.Request.Context(), c.Query("keyword"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
