package main

import (
	"io/fs"
	"os"

	"github.com/fekuna/omnipos-catalog-service/fixtures"
	"github.com/fekuna/omnipos-catalog-service/internal/fixture"
	"github.com/fekuna/omnipos-catalog-service/migrations"
	"github.com/spf13/cobra"
)

func newLoadFixturesCommand(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "load-fixtures [file...]",
		Short: "Migrate the database and load the demo fixtures in order",
		Long: `Apply pending migrations, then load fixture files one transaction per
file. Without arguments the shipped sequence is loaded: admin, category,
product, brand, type, product inventory and media. The first failing file
stops the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.Fixtures.Dir
			}
			var fsys fs.FS = fixtures.FS
			if dir != "" {
				fsys = os.DirFS(dir)
			}

			files := args
			if len(files) == 0 {
				files = a.cfg.Fixtures.Files
			}

			loader := fixture.NewLoader(a.db, fsys, a.logger)
			return fixture.Bootstrap(cmd.Context(), a.db, migrations.FS, loader, files, a.logger)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "read fixtures from this directory instead of the embedded set")
	return cmd
}
