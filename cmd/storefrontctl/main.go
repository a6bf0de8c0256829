// Command storefrontctl is the operator tool for the storefront database:
// schema migrations, demo data, product import, staff accounts and cart
// maintenance.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger

	rootCmd = &cobra.Command{
		Use:           "storefrontctl",
		Short:         "Operate the storefront database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadFrom(configPath)
			if err != nil {
				return err
			}
			log, err = logger.New(&logger.Config{
				Level:      logLevel,
				Format:     "console",
				Output:     "stderr",
				TimeFormat: "2006-01-02 15:04:05",
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = logger.Sync(log)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd(), newCreateStaffCmd(), newPurgeCartsCmd(), newImportProductsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDatabase connects through GORM with SQL logging at warn level
func openDatabase() (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel("warn"))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
