package admin

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, u *model.AdminUser) error
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
