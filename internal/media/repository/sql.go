package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/media"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const columns = "id, product_inventory_id, image, alt_text, is_feature, created_at, updated_at"

type SQLRepository struct {
	DB database.Queryer
}

func NewRepository(db database.Queryer) *SQLRepository {
	return &SQLRepository{DB: db}
}

var _ media.Repository = (*SQLRepository)(nil)

func (r *SQLRepository) WithTx(ctx context.Context, fn func(repo media.Repository) error) error {
	return database.Transact(ctx, r.DB, func(tx database.Queryer) error {
		return fn(NewRepository(tx))
	})
}

func (r *SQLRepository) Create(ctx context.Context, m *model.Media) error {
	query := `
        INSERT INTO media (id, product_inventory_id, image, alt_text, is_feature, created_at, updated_at)
        VALUES (:id, :product_inventory_id, :image, :alt_text, :is_feature, :created_at, :updated_at)
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, m)
	return database.WriteError(err)
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.Media, error) {
	var m model.Media
	err := sqlx.GetContext(ctx, r.DB, &m, r.DB.Rebind(`SELECT `+columns+` FROM media WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// FindByInventory lists the images of a variant, the feature image first and
// the rest oldest first.
func (r *SQLRepository) FindByInventory(ctx context.Context, inventoryID string) ([]model.Media, error) {
	items := []model.Media{}
	query := r.DB.Rebind(`
        SELECT ` + columns + `
        FROM media
        WHERE product_inventory_id = ?
        ORDER BY is_feature DESC, created_at ASC, id ASC
    `)
	err := sqlx.SelectContext(ctx, r.DB, &items, query, inventoryID)
	return items, err
}

func (r *SQLRepository) Update(ctx context.Context, m *model.Media) error {
	query := `
        UPDATE media
        SET image = :image,
            alt_text = :alt_text,
            is_feature = :is_feature,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, m)
	return database.WriteError(err)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM media WHERE id = ?`), id)
	return database.DeleteError(err)
}

func (r *SQLRepository) ClearFeature(ctx context.Context, inventoryID, keepID string) error {
	query := r.DB.Rebind(`UPDATE media SET is_feature = ? WHERE product_inventory_id = ? AND id != ? AND is_feature = ?`)
	_, err := r.DB.ExecContext(ctx, query, false, inventoryID, keepID, true)
	return err
}
