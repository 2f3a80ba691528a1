package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/admin"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB database.Queryer
}

func NewRepository(db database.Queryer) *SQLRepository {
	return &SQLRepository{DB: db}
}

var _ admin.Repository = (*SQLRepository)(nil)

func (r *SQLRepository) Create(ctx context.Context, u *model.AdminUser) error {
	query := `
        INSERT INTO admin_users (
            id, username, email, password_hash, is_staff, is_superuser, is_active, date_joined, last_login
        )
        VALUES (
            :id, :username, :email, :password_hash, :is_staff, :is_superuser, :is_active, :date_joined, :last_login
        )
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, u)
	return database.WriteError(err)
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var u model.AdminUser
	query := r.DB.Rebind(`
        SELECT id, username, email, password_hash, is_staff, is_superuser, is_active, date_joined, last_login
        FROM admin_users
        WHERE username = ?
    `)
	err := sqlx.GetContext(ctx, r.DB, &u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *SQLRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE admin_users SET last_login = ? WHERE id = ?`), at, id)
	return err
}
