package main

import (
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type seedOptions struct {
	categories int
	products   int
	customers  int
	password   string
	seed       uint64
}

func newSeedCmd() *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the catalog with demo categories, products and customers",
		Long: `seed goes through the same services as the admin API, so slugs, prices
and stock obey the usual rules. Rows whose slug or username already exists
are skipped, which makes the command safe to repeat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.categories, "categories", 6, "number of categories")
	cmd.Flags().IntVar(&opts.products, "products", 40, "number of products")
	cmd.Flags().IntVar(&opts.customers, "customers", 5, "number of customer accounts")
	cmd.Flags().StringVar(&opts.password, "password", "Passw0rd123", "password of the demo customers")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed, 0 picks one")
	return cmd
}

func runSeed(cmd *cobra.Command, opts seedOptions) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categories := catalogapp.NewCategoryService(categoryRepo)
	products := catalogapp.NewProductService(productRepo, categoryRepo, nil, log)
	users := identityapp.NewUserService(persistence.NewGormUserRepository(db.DB), log)

	faker := gofakeit.New(opts.seed)
	title := cases.Title(language.English)

	var categoryIDs []uuid.UUID
	for i := 0; i < opts.categories; i++ {
		created, err := categories.Create(ctx, catalogapp.CreateCategoryRequest{
			Name:        title.String(faker.ProductCategory()),
			Description: faker.Sentence(10),
		})
		if errors.Is(err, shared.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		categoryIDs = append(categoryIDs, created.ID)
	}

	createdProducts := 0
	for i := 0; i < opts.products; i++ {
		req := catalogapp.CreateProductRequest{
			Name:        faker.ProductName(),
			Description: faker.ProductDescription(),
			Price:       decimal.NewFromFloat(faker.Price(1, 500)).Round(2),
			Stock:       ptr(faker.Number(0, 50)),
			IsAvailable: ptr(faker.Number(1, 10) > 1),
		}
		if len(categoryIDs) > 0 {
			req.CategoryID = &categoryIDs[faker.Number(0, len(categoryIDs)-1)]
		}
		if _, err := products.Create(ctx, req); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("create product %q: %w", req.Name, err)
		}
		createdProducts++
	}

	createdCustomers := 0
	for i := 0; i < opts.customers; i++ {
		_, err := users.Register(ctx, identityapp.RegisterRequest{
			Username:        faker.Username(),
			Email:           faker.Email(),
			FirstName:       faker.FirstName(),
			LastName:        faker.LastName(),
			Password:        opts.password,
			PasswordConfirm: opts.password,
		})
		if errors.Is(err, shared.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		createdCustomers++
	}

	log.Info("Seed complete",
		zap.Int("categories", len(categoryIDs)),
		zap.Int("products", createdProducts),
		zap.Int("customers", createdCustomers))
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
