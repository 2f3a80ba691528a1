package fixture

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/fekuna/omnipos-catalog-service/internal/database/migrate"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// DefaultSequence is the load order of the shipped fixtures. Brands and
// product types precede product inventory, which references both.
var DefaultSequence = []string{
	"db_admin_fixture.json",
	"db_category_fixture.json",
	"db_product_fixture.json",
	"db_brand_fixture.json",
	"db_type_fixture.json",
	"db_product_inventory_fixture.json",
	"db_media_fixture.json",
}

// Bootstrap applies pending migrations from migrations and then loads files
// from the loader's filesystem in order. It stops at the first file that
// fails; files loaded before it stay committed.
func Bootstrap(ctx context.Context, db *sqlx.DB, migrations fs.FS, loader *Loader, files []string, log logger.ZapLogger) error {
	migrator, err := migrate.NewFS(db, migrations, log)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if len(files) == 0 {
		files = DefaultSequence
	}
	for _, name := range files {
		if _, err := loader.LoadFile(ctx, name); err != nil {
			log.Error("fixture failed", zap.String("file", name), zap.Error(err))
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}
