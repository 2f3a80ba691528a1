package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Category, error)
	FindChildren(ctx context.Context, parentID *string) ([]model.Category, error)
	FindSubtree(ctx context.Context, root *model.Category) ([]model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, category *model.Category) error
	MoveSubtree(ctx context.Context, category *model.Category, parentID *string, path string, level int) error
	Delete(ctx context.Context, id string) error

	// WithTx runs fn with a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(repo Repository) error) error
}
