package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	ListChildren(ctx context.Context, parentID *string) ([]model.Category, error)
	GetAncestors(ctx context.Context, id string, includeSelf bool) ([]model.Category, error)
	GetDescendants(ctx context.Context, id string, includeSelf bool) ([]model.Category, error)
	GetTree(ctx context.Context, rootID *string) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
