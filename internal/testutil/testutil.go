// Package testutil provides migrated throwaway databases for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/database/migrate"
	"github.com/fekuna/omnipos-catalog-service/migrations"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap/zaptest"
)

// NewDB returns an in-memory sqlite database with every migration applied.
// It is closed when the test ends.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()
	db := NewEmptyDB(t)
	m, err := migrate.NewFS(db, migrations.FS, logger.NewNop())
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if err := m.Up(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewEmptyDB returns an in-memory sqlite database without any schema.
func NewEmptyDB(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), &database.Config{
		Driver: database.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&_foreign_keys=on", uuid.New().String()),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Logger returns a logger that writes through t.
func Logger(t testing.TB) logger.ZapLogger {
	return logger.FromZap(zaptest.NewLogger(t))
}
