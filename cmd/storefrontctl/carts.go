package main

import (
	"time"

	"github.com/spf13/cobra"
	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/scheduler"
)

func newPurgeCartsCmd() *cobra.Command {
	var maxAge time.Duration
	cmd := &cobra.Command{
		Use:   "purge-carts",
		Short: "Delete session carts that have not been touched for a while",
		Long:  "purge-carts runs the scheduled cart purge job once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxAge <= 0 {
				maxAge = cfg.Scheduler.CartMaxAge
			}
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			carts := cartapp.NewCartService(
				persistence.NewGormCartRepository(db.DB),
				persistence.NewGormProductRepository(db.DB),
				log)
			return scheduler.NewCartPurgeJob(carts, maxAge, log).Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "age of the last update (default: scheduler.cart_max_age)")
	return cmd
}
