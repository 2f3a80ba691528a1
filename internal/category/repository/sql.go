package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const columns = "id, name, slug, is_active, parent_id, path, level"

type SQLRepository struct {
	DB database.Queryer
}

func NewRepository(db database.Queryer) *SQLRepository {
	return &SQLRepository{DB: db}
}

var _ category.Repository = (*SQLRepository)(nil)

func (r *SQLRepository) WithTx(ctx context.Context, fn func(repo category.Repository) error) error {
	return database.Transact(ctx, r.DB, func(tx database.Queryer) error {
		return fn(NewRepository(tx))
	})
}

func (r *SQLRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, slug, is_active, parent_id, path, level)
        VALUES (:id, :name, :slug, :is_active, :parent_id, :path, :level)
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, c)
	return database.WriteError(err)
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	query := r.DB.Rebind(`SELECT ` + columns + ` FROM categories WHERE id = ?`)
	err := sqlx.GetContext(ctx, r.DB, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *SQLRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Category, error) {
	if len(ids) == 0 {
		return []model.Category{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+columns+` FROM categories WHERE id IN (?) ORDER BY level ASC`, ids)
	if err != nil {
		return nil, err
	}
	var items []model.Category
	err = sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(query), args...)
	return items, err
}

func (r *SQLRepository) FindChildren(ctx context.Context, parentID *string) ([]model.Category, error) {
	var items []model.Category
	var err error
	if parentID == nil {
		err = sqlx.SelectContext(ctx, r.DB, &items,
			`SELECT `+columns+` FROM categories WHERE parent_id IS NULL ORDER BY name ASC, id ASC`)
	} else {
		err = sqlx.SelectContext(ctx, r.DB, &items,
			r.DB.Rebind(`SELECT `+columns+` FROM categories WHERE parent_id = ? ORDER BY name ASC, id ASC`), *parentID)
	}
	return items, err
}

// subtreeCond matches paths that start with the given prefix, compared
// literally and case-sensitively.
const subtreeCond = `SUBSTR(path, 1, CAST(? AS INTEGER)) = CAST(? AS TEXT)`

// FindSubtree returns root and all of its descendants, shallowest first.
func (r *SQLRepository) FindSubtree(ctx context.Context, root *model.Category) ([]model.Category, error) {
	var items []model.Category
	query := r.DB.Rebind(`SELECT ` + columns + ` FROM categories WHERE ` + subtreeCond + ` ORDER BY level ASC, name ASC`)
	err := sqlx.SelectContext(ctx, r.DB, &items, query, model.PathLen(root.Path), root.Path)
	return items, err
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var categories []model.Category
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM categories"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, r.DB, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + columns + " FROM categories" + whereClause + " ORDER BY name ASC, id ASC"
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
	if err := sqlx.SelectContext(ctx, r.DB, &categories, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return categories, count, nil
}

func (r *SQLRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            slug = :slug,
            is_active = :is_active
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, c)
	return database.WriteError(err)
}

// MoveSubtree reparents c and rewrites the path and level of every node in
// its subtree in one transaction.
func (r *SQLRepository) MoveSubtree(ctx context.Context, c *model.Category, parentID *string, path string, level int) error {
	return database.Transact(ctx, r.DB, func(tx database.Queryer) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE categories SET parent_id = ? WHERE id = ?`), parentID, c.ID)
		if err != nil {
			return database.WriteError(err)
		}

		query := tx.Rebind(`
            UPDATE categories
            SET path = CAST(? AS TEXT) || SUBSTR(path, CAST(? AS INTEGER)),
                level = level + CAST(? AS INTEGER)
            WHERE ` + subtreeCond + `
        `)
		n := model.PathLen(c.Path)
		_, err = tx.ExecContext(ctx, query, path, n+1, level-c.Level, n, c.Path)
		if err != nil {
			return database.WriteError(err)
		}

		c.ParentID = parentID
		c.Path = path
		c.Level = level
		return nil
	})
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM categories WHERE id = ?"), id)
	return database.DeleteError(err)
}
