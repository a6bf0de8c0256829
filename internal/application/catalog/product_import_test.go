package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	csvimport "github.com/storefront/backend/internal/infrastructure/import"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const importFile = `name,slug,description,price,stock,is_available,category
Enamel Mug,,Speckled blue,12.50,8,yes,kitchen
Desk Lamp,lamp,,40,,no,
`

func TestProductImport_CreatesNewProducts(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	publisher := new(MockEventPublisher)
	kitchen := newTestCategory("Kitchen")

	categories.On("FindBySlug", ctx, "kitchen").Return(kitchen, nil)
	products.On("FindBySlug", ctx, mock.Anything).Return(nil, shared.ErrNotFound)
	products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	service := NewProductImportService(products, categories, nil)
	service.SetEventPublisher(publisher)

	report, err := service.Import(ctx, strings.NewReader(importFile), ProductImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 2, report.Created)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Errors)

	saved := products.Calls[len(products.Calls)-3].Arguments.Get(1).(*catalog.Product)
	assert.Equal(t, "enamel-mug", saved.Slug)
	assert.Equal(t, 8, saved.Stock)
	assert.Equal(t, "Speckled blue", saved.Description)
	require.NotNil(t, saved.CategoryID)
	assert.Equal(t, kitchen.ID, *saved.CategoryID)

	lamp := products.Calls[len(products.Calls)-1].Arguments.Get(1).(*catalog.Product)
	assert.Equal(t, "lamp", lamp.Slug)
	assert.Equal(t, catalog.DefaultProductStock, lamp.Stock)
	assert.False(t, lamp.IsAvailable)
	assert.True(t, decimal.RequireFromString("40").Equal(lamp.Price))

	publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestProductImport_ConflictModes(t *testing.T) {
	ctx := context.Background()
	file := "name,slug,price\nDesk Lamp,lamp,45.00\n"

	tests := []struct {
		mode    ConflictMode
		updated int
		skipped int
		failed  int
	}{
		{mode: ConflictSkip, skipped: 1},
		{mode: ConflictUpdate, updated: 1},
		{mode: ConflictFail, failed: 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			products := new(MockProductRepository)
			existing := newTestProduct("Desk Lamp", "40.00")
			existing.Slug = "lamp"
			products.On("FindBySlug", ctx, "lamp").Return(existing, nil)
			products.On("Save", ctx, existing).Return(nil)

			report, err := NewProductImportService(products, new(MockCategoryRepository), nil).
				Import(ctx, strings.NewReader(file), ProductImportOptions{OnConflict: tt.mode})
			require.NoError(t, err)

			assert.Equal(t, tt.updated, report.Updated)
			assert.Equal(t, tt.skipped, report.Skipped)
			assert.Equal(t, tt.failed, report.Failed)
			if tt.updated == 1 {
				assert.True(t, decimal.RequireFromString("45").Equal(existing.Price))
				products.AssertCalled(t, "Save", ctx, existing)
			} else {
				products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			}
			if tt.failed == 1 {
				assert.Equal(t, csvimport.ErrCodeDuplicateInStore, report.Errors[0].Code)
			}
		})
	}
}

func TestProductImport_ReportsRowErrors(t *testing.T) {
	ctx := context.Background()
	file := strings.Join([]string{
		"Name,Price,Stock,Category",
		"Mug,12.50,2,",
		",3.00,,",
		"Kettle,abc,,",
		"Spoon,1.999,,",
		"Mug,5,,",
		"Plate,4,,garden",
		"!!!,4,,",
	}, "\n")

	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	categories.On("FindBySlug", ctx, "garden").Return(nil, shared.ErrNotFound)
	products.On("FindBySlug", ctx, "mug").Return(nil, shared.ErrNotFound)
	products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	report, err := NewProductImportService(products, categories, nil).
		Import(ctx, strings.NewReader(file), ProductImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 7, report.TotalRows)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 6, report.Failed)

	codes := make(map[int]string)
	for _, e := range report.Errors {
		codes[e.Row] = e.Code
	}
	assert.Equal(t, map[int]string{
		3: csvimport.ErrCodeRequired,
		4: csvimport.ErrCodeInvalidType,
		5: csvimport.ErrCodeInvalidValue,
		6: csvimport.ErrCodeDuplicateInFile,
		7: csvimport.ErrCodeReferenceNotFound,
		8: csvimport.ErrCodeInvalidValue,
	}, codes)
	products.AssertNumberOfCalls(t, "Save", 1)
}

func TestProductImport_DryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	categories.On("FindBySlug", ctx, "kitchen").Return(newTestCategory("Kitchen"), nil)
	products.On("FindBySlug", ctx, "enamel-mug").Return(nil, shared.ErrNotFound)
	products.On("FindBySlug", ctx, "lamp").Return(newTestProduct("Desk Lamp", "40.00"), nil)

	report, err := NewProductImportService(products, categories, nil).
		Import(ctx, strings.NewReader(importFile), ProductImportOptions{DryRun: true, OnConflict: ConflictUpdate})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Updated)
	products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductImport_RejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		file string
		opts ProductImportOptions
		msg  string
	}{
		{name: "empty", file: "", msg: "empty"},
		{name: "missing price column", file: "name\nMug\n", msg: "Missing required columns: price"},
		{name: "unknown mode", file: importFile, opts: ProductImportOptions{OnConflict: "merge"}, msg: "Unknown conflict mode"},
		{name: "too many rows", file: "name,price\nA,1\nB,2\nC,3\n", opts: ProductImportOptions{MaxRows: 2}, msg: "too many rows"},
		{
			name: "latin-1 row past the first 4 KB",
			file: "name,price\n" + strings.Repeat("Plain Mug,1.00\n", 400) + "Caf\xe9 Cup,2.00\n",
			msg:  "not UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(MockProductRepository)
			products.On("FindBySlug", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

			_, err := NewProductImportService(products, new(MockCategoryRepository), nil).
				Import(context.Background(), strings.NewReader(tt.file), tt.opts)

			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.msg)
			products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestProductImport_StoreFailureAborts(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	products.On("FindBySlug", ctx, "mug").Return(nil, shared.ErrNotFound)
	products.On("Save", ctx, mock.Anything).Return(errors.New("connection reset"))

	report, err := NewProductImportService(products, new(MockCategoryRepository), nil).
		Import(ctx, strings.NewReader("name,price\nMug,1\n"), ProductImportOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	require.NotNil(t, report)
	assert.Zero(t, report.Created)
}
