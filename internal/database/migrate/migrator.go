package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version     INTEGER      PRIMARY KEY,
    description VARCHAR(255) NOT NULL,
    applied_at  TIMESTAMP    NOT NULL
)`
	currentVersionSQL = `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`
	appliedSQL        = `SELECT version FROM schema_migrations ORDER BY version`
	recordSQL         = `INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`
	forgetSQL         = `DELETE FROM schema_migrations WHERE version = ?`
)

type Status struct {
	CurrentVersion    int   `json:"current_version"`
	PendingMigrations []int `json:"pending_migrations"`
	TotalMigrations   int   `json:"total_migrations"`
	HasPendingChanges bool  `json:"has_pending_changes"`
}

type Migrator struct {
	db          *sqlx.DB
	provider    Provider
	logger      logger.ZapLogger
	initialized bool
}

func New(db *sqlx.DB, provider Provider, log logger.ZapLogger) *Migrator {
	return &Migrator{
		db:       db,
		provider: provider,
		logger:   log,
	}
}

// NewFS creates a migrator over the migration files in fsys.
func NewFS(db *sqlx.DB, fsys fs.FS, log logger.ZapLogger) (*Migrator, error) {
	provider, err := NewFSProvider(fsys)
	if err != nil {
		return nil, err
	}
	return New(db, provider, log), nil
}

func (m *Migrator) Provider() Provider {
	return m.provider
}

// Initialize creates the bookkeeping table if it does not exist.
func (m *Migrator) Initialize(ctx context.Context) error {
	if m.initialized {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	m.initialized = true
	return nil
}

func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	if err := m.Initialize(ctx); err != nil {
		return 0, err
	}
	var version int
	if err := m.db.GetContext(ctx, &version, currentVersionSQL); err != nil {
		return 0, fmt.Errorf("get current version: %w", err)
	}
	return version, nil
}

func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}
	var versions []int
	if err := m.db.SelectContext(ctx, &versions, appliedSQL); err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	return versions, nil
}

func (m *Migrator) Pending(ctx context.Context) ([]int, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	var pending []int
	for _, mig := range m.provider.Migrations() {
		if mig.Version > current {
			pending = append(pending, mig.Version)
		}
	}
	return pending, nil
}

func (m *Migrator) Status(ctx context.Context) (*Status, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}
	return &Status{
		CurrentVersion:    current,
		PendingMigrations: pending,
		TotalMigrations:   len(m.provider.Migrations()),
		HasPendingChanges: len(pending) > 0,
	}, nil
}

// Up applies every pending migration, each in its own transaction. The
// first failure stops the run and leaves earlier migrations applied.
func (m *Migrator) Up(ctx context.Context) error {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	migrations := m.provider.Migrations()
	m.logger.Info("Migrating up", zap.Int("current_version", current), zap.Int("total_migrations", len(migrations)))

	for _, mig := range migrations {
		if mig.Version <= current {
			continue
		}
		m.logger.Info("Applying migration", zap.Int("version", mig.Version), zap.String("description", mig.Description))

		err := database.Transact(ctx, m.db, func(tx database.Queryer) error {
			if err := mig.Up(ctx, tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, tx.Rebind(recordSQL), mig.Version, mig.Description, time.Now().UTC())
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %d: %w", mig.Version, err)
		}
	}

	m.logger.Info("All migrations applied")
	return nil
}

// Down reverts the most recently applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	if current == 0 {
		return fmt.Errorf("no applied migrations to revert")
	}

	var target *Migration
	for _, mig := range m.provider.Migrations() {
		if mig.Version == current {
			target = mig
			break
		}
	}
	if target == nil {
		return fmt.Errorf("applied migration %d is unknown to the provider", current)
	}

	m.logger.Info("Reverting migration", zap.Int("version", target.Version), zap.String("description", target.Description))

	err = database.Transact(ctx, m.db, func(tx database.Queryer) error {
		if err := target.Down(ctx, tx); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(forgetSQL), target.Version)
		return err
	})
	if err != nil {
		return fmt.Errorf("revert migration %d: %w", target.Version, err)
	}
	return nil
}

// DownAll reverts every applied migration.
func (m *Migrator) DownAll(ctx context.Context) error {
	for {
		current, err := m.CurrentVersion(ctx)
		if err != nil {
			return err
		}
		if current == 0 {
			return nil
		}
		if err := m.Down(ctx); err != nil {
			return err
		}
	}
}
