package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fekuna/omnipos-catalog-service/internal/database/migrate"
	"github.com/fekuna/omnipos-catalog-service/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Apply, revert or inspect schema migrations",
	}

	var all bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := migrate.NewFS(a.db, migrations.FS, a.logger)
			if err != nil {
				return err
			}
			if all {
				return m.DownAll(cmd.Context())
			}
			return m.Down(cmd.Context())
		},
	}
	down.Flags().BoolVar(&all, "all", false, "revert every applied migration")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := migrate.NewFS(a.db, migrations.FS, a.logger)
				if err != nil {
					return err
				}
				return m.Up(cmd.Context())
			},
		},
		down,
		&cobra.Command{
			Use:   "status",
			Short: "Print the current version and pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := migrate.NewFS(a.db, migrations.FS, a.logger)
				if err != nil {
					return err
				}
				status, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(status); err != nil {
					return fmt.Errorf("print status: %w", err)
				}
				return nil
			},
		},
	)
	return cmd
}
