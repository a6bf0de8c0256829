package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

type importOptions struct {
	file       string
	onConflict string
	dryRun     bool
	maxRows    int
	maxErrors  int
}

func newImportProductsCmd() *cobra.Command {
	opts := importOptions{}
	cmd := &cobra.Command{
		Use:   "import-products",
		Short: "Load products from a CSV file",
		Long: `import-products reads a CSV file with the columns
name, price (required) and slug, description, stock, is_available, category.
Rows are matched to existing products by slug; the slug is derived from
the name when blank. category holds a category slug.

Every row is validated before anything is written. Rows with errors are
listed and left out; the remaining rows are still imported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportProducts(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "CSV file to import")
	cmd.Flags().StringVar(&opts.onConflict, "on-conflict", string(catalogapp.ConflictSkip), "existing slugs: skip, update or fail")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate and report without writing")
	cmd.Flags().IntVar(&opts.maxRows, "max-rows", 10000, "refuse files with more data rows")
	cmd.Flags().IntVar(&opts.maxErrors, "max-errors", 100, "row errors to list")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImportProducts(cmd *cobra.Command, opts importOptions) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	service := catalogapp.NewProductImportService(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormCategoryRepository(db.DB),
		log)

	report, err := service.Import(cmd.Context(), f, catalogapp.ProductImportOptions{
		OnConflict: catalogapp.ConflictMode(opts.onConflict),
		DryRun:     opts.dryRun,
		MaxRows:    opts.maxRows,
		MaxErrors:  opts.maxErrors,
	})
	if report != nil {
		printImportReport(cmd, report)
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d rows were not imported", report.Failed, report.TotalRows)
	}
	return nil
}

func printImportReport(cmd *cobra.Command, report *catalogapp.ProductImportReport) {
	out := cmd.OutOrStdout()
	if report.DryRun {
		fmt.Fprintln(out, "Dry run, nothing was written.")
	}
	fmt.Fprintf(out, "rows: %d  created: %d  updated: %d  skipped: %d  failed: %d\n",
		report.TotalRows, report.Created, report.Updated, report.Skipped, report.Failed)
	for _, e := range report.Errors {
		fmt.Fprintln(out, "  "+e.Error())
	}
	if report.Truncated {
		fmt.Fprintf(out, "  ... %d more errors not shown\n", report.TotalErrors-len(report.Errors))
	}
}
