package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const columns = "p.id, p.web_id, p.slug, p.name, p.description, p.is_active, p.created_at, p.updated_at"

type SQLRepository struct {
	DB database.Queryer
}

func NewRepository(db database.Queryer) *SQLRepository {
	return &SQLRepository{DB: db}
}

var _ product.Repository = (*SQLRepository)(nil)

func (r *SQLRepository) WithTx(ctx context.Context, fn func(repo product.Repository) error) error {
	return database.Transact(ctx, r.DB, func(tx database.Queryer) error {
		return fn(NewRepository(tx))
	})
}

func (r *SQLRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, web_id, slug, name, description, is_active, created_at, updated_at)
        VALUES (:id, :web_id, :slug, :name, :description, :is_active, :created_at, :updated_at)
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, p)
	return database.WriteError(err)
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.findOne(ctx, "p.id = ?", id)
}

func (r *SQLRepository) FindByWebID(ctx context.Context, webID string) (*model.Product, error) {
	return r.findOne(ctx, "p.web_id = ?", webID)
}

func (r *SQLRepository) findOne(ctx context.Context, cond string, arg interface{}) (*model.Product, error) {
	var p model.Product
	query := r.DB.Rebind(`SELECT ` + columns + ` FROM products p WHERE ` + cond)
	err := sqlx.GetContext(ctx, r.DB, &p, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}
	from := " FROM products p"

	if f.CategoryID != "" {
		from += " JOIN product_categories pc ON pc.product_id = p.id"
		conditions = append(conditions, "pc.category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "p.is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		// LOWER keeps the match case-insensitive on both postgres and sqlite
		conditions = append(conditions, "(LOWER(p.name) LIKE :search OR LOWER(p.web_id) LIKE :search)")
		args["search"] = "%" + strings.ToLower(f.SearchQuery) + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*)"+from+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, r.DB, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	orderBy := "p.created_at DESC"
	if f.SortBy != "" {
		// Prevent SQL injection by whitelisting fields
		switch f.SortBy {
		case "name":
			orderBy = "p.name"
		case "web_id":
			orderBy = "p.web_id"
		default:
			orderBy = "p.created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT %s%s%s ORDER BY %s, p.id ASC", columns, from, whereClause, orderBy)
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
	if err := sqlx.SelectContext(ctx, r.DB, &products, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *SQLRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET web_id = :web_id,
            slug = :slug,
            name = :name,
            description = :description,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, p)
	return database.WriteError(err)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM products WHERE id = ?"), id)
	return database.DeleteError(err)
}

func (r *SQLRepository) IsWebIDUnique(ctx context.Context, webID, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE web_id = ?`
	args := []interface{}{webID}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	err := sqlx.GetContext(ctx, r.DB, &count, r.DB.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *SQLRepository) AddCategories(ctx context.Context, productID string, categoryIDs ...string) error {
	query := r.DB.Rebind(`
        INSERT INTO product_categories (product_id, category_id)
        VALUES (?, ?)
        ON CONFLICT DO NOTHING
    `)
	for _, categoryID := range categoryIDs {
		if _, err := r.DB.ExecContext(ctx, query, productID, categoryID); err != nil {
			return database.WriteError(err)
		}
	}
	return nil
}

func (r *SQLRepository) RemoveCategory(ctx context.Context, productID, categoryID string) error {
	query := r.DB.Rebind(`DELETE FROM product_categories WHERE product_id = ? AND category_id = ?`)
	_, err := r.DB.ExecContext(ctx, query, productID, categoryID)
	return err
}

func (r *SQLRepository) CategoryIDs(ctx context.Context, productID string) ([]string, error) {
	ids := []string{}
	query := r.DB.Rebind(`
        SELECT pc.category_id
        FROM product_categories pc
        JOIN categories c ON c.id = pc.category_id
        WHERE pc.product_id = ?
        ORDER BY c.name ASC, c.id ASC
    `)
	err := sqlx.SelectContext(ctx, r.DB, &ids, query, productID)
	return ids, err
}

// FindByCategoryPath returns the distinct products linked to any category
// whose path starts with pathPrefix.
func (r *SQLRepository) FindByCategoryPath(ctx context.Context, pathPrefix string) ([]model.Product, error) {
	query := `
        SELECT ` + columns + `
        FROM products p
        WHERE p.id IN (
            SELECT pc.product_id
            FROM product_categories pc
            JOIN categories c ON c.id = pc.category_id
            WHERE SUBSTR(c.path, 1, CAST(? AS INTEGER)) = CAST(? AS TEXT)
        )
        ORDER BY p.name ASC, p.id ASC`

	var products []model.Product
	err := sqlx.SelectContext(ctx, r.DB, &products, r.DB.Rebind(query), model.PathLen(pathPrefix), pathPrefix)
	return products, err
}
