package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// staffPasswordEnv keeps the password out of shell history
const staffPasswordEnv = "STORE_STAFF_PASSWORD"

func newCreateStaffCmd() *cobra.Command {
	var input identityapp.CreateStaffInput
	cmd := &cobra.Command{
		Use:   "create-staff",
		Short: "Create an account with access to the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Password == "" {
				input.Password = os.Getenv(staffPasswordEnv)
			}
			if input.Password == "" {
				return errors.New("a password is required: pass --password or set " + staffPasswordEnv)
			}

			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			users := identityapp.NewUserService(persistence.NewGormUserRepository(db.DB), log)
			created, err := users.CreateStaff(cmd.Context(), input)
			if err != nil {
				return err
			}
			log.Info("Staff account created",
				zap.String("user_id", created.ID.String()),
				zap.String("username", created.Username))
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Username, "username", "", "login name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "password (default: $"+staffPasswordEnv+")")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
