package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// MaxImportFileSize caps the uploaded CSV
const MaxImportFileSize = 10 << 20

// ProductImportQuery holds the options of a product import upload
type ProductImportQuery struct {
	OnConflict string `form:"on_conflict" binding:"omitempty,oneof=skip update fail"`
	DryRun     bool   `form:"dry_run"`
}

// ProductImportHandler handles CSV product uploads
type ProductImportHandler struct {
	BaseHandler
	importService *catalogapp.ProductImportService
}

// NewProductImportHandler creates a new ProductImportHandler
func NewProductImportHandler(importService *catalogapp.ProductImportService) *ProductImportHandler {
	return &ProductImportHandler{importService: importService}
}

// Import godoc
// @ID           adminImportProducts
// @Summary      Import products from CSV
// @Description  Columns: name and price (required), slug, description, stock, is_available, category (a category slug).
// @Description  Rows are validated first; rows with errors are reported and skipped.
// @Tags         admin-products
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file, at most 10 MB"
// @Param        on_conflict query string false "Rows whose slug exists" Enums(skip, update, fail) default(skip)
// @Param        dry_run query bool false "Validate without writing"
// @Success      200 {object} APIResponse[catalogapp.ProductImportReport]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/import [post]
func (h *ProductImportHandler) Import(c *gin.Context) {
	var query ProductImportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImportFileSize)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "CSV file exceeds 10 MB")
			return
		}
		h.BadRequest(c, "A CSV file is required in the 'file' field")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	report, err := h.importService.Import(c.Request.Context(), file, catalogapp.ProductImportOptions{
		OnConflict: catalogapp.ConflictMode(query.OnConflict),
		DryRun:     query.DryRun,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
