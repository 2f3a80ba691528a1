package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetProductByWebID(ctx context.Context, webID string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Category ops
	AttachCategories(ctx context.Context, productID string, categoryIDs ...string) error
	DetachCategory(ctx context.Context, productID, categoryID string) error
	ListByCategory(ctx context.Context, categoryID string, includeDescendants bool) ([]model.Product, error)
}
