package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const columns = `id, sku, upc, product_type_id, product_id, brand_id, is_active, is_default,
    retail_price, store_price, sale_price, weight, created_at, updated_at`

type SQLRepository struct {
	DB database.Queryer
}

func NewRepository(db database.Queryer) *SQLRepository {
	return &SQLRepository{DB: db}
}

var _ inventory.Repository = (*SQLRepository)(nil)

func (r *SQLRepository) WithTx(ctx context.Context, fn func(repo inventory.Repository) error) error {
	return database.Transact(ctx, r.DB, func(tx database.Queryer) error {
		return fn(NewRepository(tx))
	})
}

func (r *SQLRepository) CreateType(ctx context.Context, t *model.ProductType) error {
	_, err := sqlx.NamedExecContext(ctx, r.DB, `INSERT INTO product_types (id, name) VALUES (:id, :name)`, t)
	return database.WriteError(err)
}

func (r *SQLRepository) FindTypeByID(ctx context.Context, id string) (*model.ProductType, error) {
	var t model.ProductType
	if err := r.get(ctx, &t, `SELECT id, name FROM product_types WHERE id = ?`, id); err != nil || t.ID == "" {
		return nil, err
	}
	return &t, nil
}

func (r *SQLRepository) FindTypes(ctx context.Context) ([]model.ProductType, error) {
	items := []model.ProductType{}
	err := sqlx.SelectContext(ctx, r.DB, &items, `SELECT id, name FROM product_types ORDER BY name ASC`)
	return items, err
}

func (r *SQLRepository) DeleteType(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM product_types WHERE id = ?`), id)
	return database.DeleteError(err)
}

func (r *SQLRepository) CreateBrand(ctx context.Context, b *model.Brand) error {
	_, err := sqlx.NamedExecContext(ctx, r.DB, `INSERT INTO brands (id, name) VALUES (:id, :name)`, b)
	return database.WriteError(err)
}

func (r *SQLRepository) FindBrandByID(ctx context.Context, id string) (*model.Brand, error) {
	var b model.Brand
	if err := r.get(ctx, &b, `SELECT id, name FROM brands WHERE id = ?`, id); err != nil || b.ID == "" {
		return nil, err
	}
	return &b, nil
}

func (r *SQLRepository) FindBrands(ctx context.Context) ([]model.Brand, error) {
	items := []model.Brand{}
	err := sqlx.SelectContext(ctx, r.DB, &items, `SELECT id, name FROM brands ORDER BY name ASC`)
	return items, err
}

func (r *SQLRepository) DeleteBrand(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM brands WHERE id = ?`), id)
	return database.DeleteError(err)
}

func (r *SQLRepository) Create(ctx context.Context, inv *model.ProductInventory) error {
	query := `
        INSERT INTO product_inventory (
            id, sku, upc, product_type_id, product_id, brand_id, is_active, is_default,
            retail_price, store_price, sale_price, weight, created_at, updated_at
        )
        VALUES (
            :id, :sku, :upc, :product_type_id, :product_id, :brand_id, :is_active, :is_default,
            :retail_price, :store_price, :sale_price, :weight, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, inv)
	return database.WriteError(err)
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.ProductInventory, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *SQLRepository) FindBySKU(ctx context.Context, sku string) (*model.ProductInventory, error) {
	return r.findOne(ctx, "sku = ?", sku)
}

func (r *SQLRepository) findOne(ctx context.Context, cond string, arg interface{}) (*model.ProductInventory, error) {
	var inv model.ProductInventory
	if err := r.get(ctx, &inv, `SELECT `+columns+` FROM product_inventory WHERE `+cond, arg); err != nil || inv.ID == "" {
		return nil, err
	}
	return &inv, nil
}

// get scans a single row into dest and leaves it untouched when there is no
// match.
func (r *SQLRepository) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := sqlx.GetContext(ctx, r.DB, dest, r.DB.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.ProductInventory, int, error) {
	var items []model.ProductInventory
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.BrandID != "" {
		conditions = append(conditions, "brand_id = :brand_id")
		args["brand_id"] = f.BrandID
	}
	if f.ProductTypeID != "" {
		conditions = append(conditions, "product_type_id = :product_type_id")
		args["product_type_id"] = f.ProductTypeID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM product_inventory"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, r.DB, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + columns + " FROM product_inventory" + whereClause + " ORDER BY sku ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *SQLRepository) Update(ctx context.Context, inv *model.ProductInventory) error {
	query := `
        UPDATE product_inventory
        SET sku = :sku,
            upc = :upc,
            product_type_id = :product_type_id,
            brand_id = :brand_id,
            is_active = :is_active,
            is_default = :is_default,
            retail_price = :retail_price,
            store_price = :store_price,
            sale_price = :sale_price,
            weight = :weight,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, inv)
	return database.WriteError(err)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM product_inventory WHERE id = ?`), id)
	return database.DeleteError(err)
}

func (r *SQLRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	return r.isUnique(ctx, "sku", sku, excludeID)
}

func (r *SQLRepository) IsUPCUnique(ctx context.Context, upc, excludeID string) (bool, error) {
	return r.isUnique(ctx, "upc", upc, excludeID)
}

// column is always one of the literals passed by the exported callers.
func (r *SQLRepository) isUnique(ctx context.Context, column, value, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM product_inventory WHERE ` + column + ` = ?`
	args := []interface{}{value}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}
	if err := sqlx.GetContext(ctx, r.DB, &count, r.DB.Rebind(query), args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

// ClearDefault unsets is_default on every variant of productID except keepID.
func (r *SQLRepository) ClearDefault(ctx context.Context, productID, keepID string) error {
	query := r.DB.Rebind(`UPDATE product_inventory SET is_default = ? WHERE product_id = ? AND id != ? AND is_default = ?`)
	_, err := r.DB.ExecContext(ctx, query, false, productID, keepID, true)
	return err
}

func (r *SQLRepository) GetStock(ctx context.Context, inventoryID string) (*model.Stock, error) {
	var s model.Stock
	query := `SELECT id, product_inventory_id, last_checked, units, units_sold FROM stock WHERE product_inventory_id = ?`
	if err := r.get(ctx, &s, query, inventoryID); err != nil || s.ID == "" {
		return nil, err
	}
	return &s, nil
}

func (r *SQLRepository) CreateStock(ctx context.Context, s *model.Stock) error {
	query := `
        INSERT INTO stock (id, product_inventory_id, last_checked, units, units_sold)
        VALUES (:id, :product_inventory_id, :last_checked, :units, :units_sold)
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, s)
	return database.WriteError(err)
}

// EnsureStock inserts s unless the variant already has a stock row.
func (r *SQLRepository) EnsureStock(ctx context.Context, s *model.Stock) error {
	query := `
        INSERT INTO stock (id, product_inventory_id, last_checked, units, units_sold)
        VALUES (:id, :product_inventory_id, :last_checked, :units, :units_sold)
        ON CONFLICT (product_inventory_id) DO NOTHING
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, s)
	return database.WriteError(err)
}

// AddUnits moves units by delta in place. It reports false, without changing
// anything, when the result would be negative or no stock row exists.
func (r *SQLRepository) AddUnits(ctx context.Context, inventoryID string, delta int, checkedAt time.Time) (bool, error) {
	query := r.DB.Rebind(`
        UPDATE stock
        SET units = units + ?,
            last_checked = ?
        WHERE product_inventory_id = ? AND units + ? >= 0
    `)
	res, err := r.DB.ExecContext(ctx, query, delta, checkedAt, inventoryID, delta)
	if err != nil {
		return false, database.WriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// DecrementStock moves quantity units from units to units_sold. It reports
// false, without changing anything, when fewer than quantity units remain.
func (r *SQLRepository) DecrementStock(ctx context.Context, inventoryID string, quantity int, checkedAt time.Time) (bool, error) {
	query := r.DB.Rebind(`
        UPDATE stock
        SET units = units - ?,
            units_sold = units_sold + ?,
            last_checked = ?
        WHERE product_inventory_id = ? AND units >= ?
    `)
	res, err := r.DB.ExecContext(ctx, query, quantity, quantity, checkedAt, inventoryID, quantity)
	if err != nil {
		return false, database.WriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
