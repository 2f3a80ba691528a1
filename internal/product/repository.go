package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByWebID(ctx context.Context, webID string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	IsWebIDUnique(ctx context.Context, webID, excludeID string) (bool, error)

	// Category links
	AddCategories(ctx context.Context, productID string, categoryIDs ...string) error
	RemoveCategory(ctx context.Context, productID, categoryID string) error
	CategoryIDs(ctx context.Context, productID string) ([]string, error)
	FindByCategoryPath(ctx context.Context, pathPrefix string) ([]model.Product, error)

	WithTx(ctx context.Context, fn func(repo Repository) error) error
}
