package media

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, m *model.Media) error
	FindByID(ctx context.Context, id string) (*model.Media, error)
	FindByInventory(ctx context.Context, inventoryID string) ([]model.Media, error)
	Update(ctx context.Context, m *model.Media) error
	Delete(ctx context.Context, id string) error
	ClearFeature(ctx context.Context, inventoryID, keepID string) error

	WithTx(ctx context.Context, fn func(repo Repository) error) error
}
