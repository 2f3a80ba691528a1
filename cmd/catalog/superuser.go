package main

import (
	"errors"
	"fmt"
	"os"

	adminrepo "github.com/fekuna/omnipos-catalog-service/internal/admin/repository"
	adminuc "github.com/fekuna/omnipos-catalog-service/internal/admin/usecase"
	"github.com/spf13/cobra"
)

func newCreateSuperuserCommand(a *app) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an admin account with every permission",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("CATALOG_SUPERUSER_PASSWORD")
			}
			if password == "" {
				return errors.New("a password is required: pass --password or set CATALOG_SUPERUSER_PASSWORD")
			}

			uc := adminuc.NewAdminUseCase(adminrepo.NewRepository(a.db), a.logger, 0)
			u, err := uc.CreateSuperuser(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created.\n", u.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "login name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (defaults to $CATALOG_SUPERUSER_PASSWORD)")
	return cmd
}
