package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	csvimport "github.com/storefront/backend/internal/infrastructure/import"
	"go.uber.org/zap"
)

// Columns of the product import file
const (
	ImportColumnName        = "name"
	ImportColumnSlug        = "slug"
	ImportColumnDescription = "description"
	ImportColumnPrice       = "price"
	ImportColumnStock       = "stock"
	ImportColumnAvailable   = "is_available"
	ImportColumnCategory    = "category"
)

const (
	defaultImportMaxRows   = 10000
	defaultImportMaxErrors = 100
)

// ConflictMode says what happens to rows whose slug already exists in the catalog
type ConflictMode string

const (
	ConflictSkip   ConflictMode = "skip"
	ConflictUpdate ConflictMode = "update"
	ConflictFail   ConflictMode = "fail"
)

// IsValid checks if the conflict mode is valid
func (c ConflictMode) IsValid() bool {
	switch c {
	case ConflictSkip, ConflictUpdate, ConflictFail:
		return true
	}
	return false
}

// ProductImportOptions controls one import run
type ProductImportOptions struct {
	OnConflict ConflictMode
	// DryRun validates and classifies every row without writing
	DryRun    bool
	MaxRows   int
	MaxErrors int
}

// ProductImportReport summarizes an import run
type ProductImportReport struct {
	TotalRows   int                  `json:"total_rows"`
	Created     int                  `json:"created"`
	Updated     int                  `json:"updated"`
	Skipped     int                  `json:"skipped"`
	Failed      int                  `json:"failed"`
	DryRun      bool                 `json:"dry_run"`
	Errors      []csvimport.RowError `json:"errors,omitempty"`
	TotalErrors int                  `json:"total_errors"`
	Truncated   bool                 `json:"truncated,omitempty"`
}

// ProductImportService loads products in bulk from a CSV file. Rows are
// keyed by slug, derived from the name when the slug cell is blank.
type ProductImportService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductImportService creates a new ProductImportService
func NewProductImportService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, logger *zap.Logger) *ProductImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductImportService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *ProductImportService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Rules returns the column rules of the import file
func (s *ProductImportService) Rules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field(ImportColumnName).Required().MaxLength(catalog.MaxProductNameLength).Build(),
		csvimport.Field(ImportColumnSlug).MaxLength(catalog.MaxProductSlugLength).UniqueInFile().
			Custom(catalog.ValidateProductSlug).Build(),
		csvimport.Field(ImportColumnDescription).MaxLength(5000).Build(),
		csvimport.Field(ImportColumnPrice).Required().Decimal(2).Range(decimal.Zero, catalog.MaxPrice).Build(),
		csvimport.Field(ImportColumnStock).Int().MinValue(decimal.Zero).Build(),
		csvimport.Field(ImportColumnAvailable).Bool().Build(),
		csvimport.Field(ImportColumnCategory).MaxLength(catalog.MaxProductSlugLength).Build(),
	}
}

type importRow struct {
	line        int
	slug        string
	name        string
	description string
	price       decimal.Decimal
	stock       *int
	available   *bool
	categoryID  *uuid.UUID
}

// Import validates the whole file, then writes the rows that passed.
// Rows with errors are reported and never written; a failure of the
// store itself aborts the run.
func (s *ProductImportService) Import(ctx context.Context, r io.Reader, opts ProductImportOptions) (*ProductImportReport, error) {
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}
	if !opts.OnConflict.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("Unknown conflict mode %q", opts.OnConflict))
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = defaultImportMaxRows
	}

	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, importFileError(err)
	}
	if err := parser.ReadHeader(); err != nil {
		return nil, importFileError(err)
	}

	errs := csvimport.NewErrorCollection(opts.MaxErrors)
	validator := csvimport.NewRowValidator(s.Rules(), errs)
	if missing := parser.MissingColumns(validator.RequiredColumns()); len(missing) > 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code,
			"Missing required columns: "+strings.Join(missing, ", "))
	}

	report := &ProductImportReport{DryRun: opts.DryRun}
	rows, err := s.readRows(ctx, parser, validator, errs, opts.MaxRows, report)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.apply(ctx, row, opts, errs, report); err != nil {
			s.finish(report, errs)
			return report, err
		}
	}
	s.finish(report, errs)

	s.logger.Info("product import finished",
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("rows", report.TotalRows),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (s *ProductImportService) finish(report *ProductImportReport, errs *csvimport.ErrorCollection) {
	report.Failed = errs.FailedRows()
	report.Errors = errs.Errors()
	report.TotalErrors = errs.Total()
	report.Truncated = errs.IsTruncated()
}

func (s *ProductImportService) readRows(
	ctx context.Context,
	parser *csvimport.Parser,
	validator *csvimport.RowValidator,
	errs *csvimport.ErrorCollection,
	maxRows int,
	report *ProductImportReport,
) ([]importRow, error) {
	categories := make(map[string]*uuid.UUID)
	slugs := make(map[string]int)
	var rows []importRow

	for {
		row, err := parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, csvimport.ErrMalformedRow) {
				report.TotalRows++
				errs.Addf(parser.Line(), "", csvimport.ErrCodeRejected, "", "%s", err.Error())
				continue
			}
			return nil, importFileError(err)
		}
		report.TotalRows++
		if report.TotalRows > maxRows {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("%s: at most %d rows per import", csvimport.ErrTooManyRows.Error(), maxRows))
		}

		if !validator.Validate(row) {
			continue
		}
		parsed := parseImportRow(row)

		if first, dup := slugs[parsed.slug]; dup {
			errs.Addf(row.Line, ImportColumnSlug, csvimport.ErrCodeDuplicateInFile, parsed.slug, "duplicate of row %d", first)
			continue
		}
		if err := catalog.ValidateProductSlug(parsed.slug); err != nil {
			errs.Addf(row.Line, ImportColumnName, csvimport.ErrCodeInvalidValue, parsed.name, "no usable slug can be derived from the name")
			continue
		}
		slugs[parsed.slug] = row.Line

		if ref := row.Get(ImportColumnCategory); ref != "" {
			id, err := s.lookupCategory(ctx, categories, ref)
			if err != nil {
				return nil, err
			}
			if id == nil {
				errs.Addf(row.Line, ImportColumnCategory, csvimport.ErrCodeReferenceNotFound, ref, "category '%s' not found", ref)
				continue
			}
			parsed.categoryID = id
		}
		rows = append(rows, parsed)
	}
	return rows, nil
}

// lookupCategory resolves a category slug once per file; nil means unknown
func (s *ProductImportService) lookupCategory(ctx context.Context, cache map[string]*uuid.UUID, slug string) (*uuid.UUID, error) {
	slug = strings.ToLower(slug)
	if id, ok := cache[slug]; ok {
		return id, nil
	}
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if errors.Is(err, shared.ErrNotFound) {
		cache[slug] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup category %q: %w", slug, err)
	}
	cache[slug] = &category.ID
	return &category.ID, nil
}

func parseImportRow(row *csvimport.Row) importRow {
	parsed := importRow{
		line:        row.Line,
		name:        row.Get(ImportColumnName),
		slug:        row.Get(ImportColumnSlug),
		description: row.Get(ImportColumnDescription),
		price:       decimal.RequireFromString(row.Get(ImportColumnPrice)),
	}
	if parsed.slug == "" {
		parsed.slug = catalog.Slugify(parsed.name)
	}
	if v := row.Get(ImportColumnStock); v != "" {
		n, _ := strconv.Atoi(v)
		parsed.stock = &n
	}
	if v := row.Get(ImportColumnAvailable); v != "" {
		b, _ := csvimport.ParseBool(v)
		parsed.available = &b
	}
	return parsed
}

func (s *ProductImportService) apply(ctx context.Context, row importRow, opts ProductImportOptions, errs *csvimport.ErrorCollection, report *ProductImportReport) error {
	existing, err := s.productRepo.FindBySlug(ctx, row.slug)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("lookup product %q: %w", row.slug, err)
	}

	var product *catalog.Product
	switch {
	case existing == nil:
		product, err = catalog.NewProduct(row.name, row.slug, row.price)
		if err == nil {
			err = fillImported(product, row)
		}
	case opts.OnConflict == ConflictSkip:
		report.Skipped++
		return nil
	case opts.OnConflict == ConflictFail:
		errs.Addf(row.line, ImportColumnSlug, csvimport.ErrCodeDuplicateInStore, row.slug, "product '%s' already exists", row.slug)
		return nil
	default:
		product = existing
		err = product.Update(row.name, row.description)
		if err == nil {
			err = product.SetPrice(row.price)
		}
		if err == nil {
			err = fillImported(product, row)
		}
	}
	if err != nil {
		return rejectRow(errs, row.line, err)
	}

	if !opts.DryRun {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return rejectRow(errs, row.line, err)
		}
		s.publish(ctx, product)
	}
	if existing == nil {
		report.Created++
	} else {
		report.Updated++
	}
	return nil
}

func fillImported(p *catalog.Product, row importRow) error {
	p.Description = row.description
	if row.stock != nil {
		if err := p.SetStock(*row.stock); err != nil {
			return err
		}
	}
	if row.available != nil {
		p.SetAvailability(*row.available)
	}
	if row.categoryID != nil {
		p.SetCategory(row.categoryID)
	}
	return nil
}

// rejectRow records domain errors against the row and passes anything else up
func rejectRow(errs *csvimport.ErrorCollection, line int, err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		errs.Addf(line, "", csvimport.ErrCodeRejected, "", "%s", de.Message)
		return nil
	}
	return err
}

func importFileError(err error) error {
	switch {
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrInvalidEncoding),
		errors.Is(err, csvimport.ErrMissingHeader),
		errors.Is(err, csvimport.ErrInvalidHeader):
		return shared.NewDomainError(shared.ErrInvalidInput.Code, err.Error())
	}
	return err
}

func (s *ProductImportService) publish(ctx context.Context, p *catalog.Product) {
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, p.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish product events",
				zap.String("product_id", p.ID.String()), zap.Error(err))
		}
	}
	p.ClearDomainEvents()
}
