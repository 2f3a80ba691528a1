package inventory

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateProductType(ctx context.Context, name string) (*model.ProductType, error)
	GetProductType(ctx context.Context, id string) (*model.ProductType, error)
	ListProductTypes(ctx context.Context) ([]model.ProductType, error)
	DeleteProductType(ctx context.Context, id string) error

	CreateBrand(ctx context.Context, name string) (*model.Brand, error)
	GetBrand(ctx context.Context, id string) (*model.Brand, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
	DeleteBrand(ctx context.Context, id string) error

	CreateInventory(ctx context.Context, input *dto.CreateInventoryInput) (*model.ProductInventory, error)
	GetInventory(ctx context.Context, id string) (*model.ProductInventory, error)
	GetInventoryBySKU(ctx context.Context, sku string) (*model.ProductInventory, error)
	ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.ProductInventory, int, error)
	UpdateInventory(ctx context.Context, input *dto.UpdateInventoryInput) (*model.ProductInventory, error)
	DeleteInventory(ctx context.Context, id string) error

	GetStock(ctx context.Context, inventoryID string) (*model.Stock, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Stock, error)
	RecordSale(ctx context.Context, items []dto.SaleItem) error
}
