package admin

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateSuperuser(ctx context.Context, username, email, password string) (*model.AdminUser, error)
	Authenticate(ctx context.Context, username, password string) (*model.AdminUser, error)
}
