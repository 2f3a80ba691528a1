package inventory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	// Product types
	CreateType(ctx context.Context, t *model.ProductType) error
	FindTypeByID(ctx context.Context, id string) (*model.ProductType, error)
	FindTypes(ctx context.Context) ([]model.ProductType, error)
	DeleteType(ctx context.Context, id string) error

	// Brands
	CreateBrand(ctx context.Context, b *model.Brand) error
	FindBrandByID(ctx context.Context, id string) (*model.Brand, error)
	FindBrands(ctx context.Context) ([]model.Brand, error)
	DeleteBrand(ctx context.Context, id string) error

	// Variants
	Create(ctx context.Context, inv *model.ProductInventory) error
	FindByID(ctx context.Context, id string) (*model.ProductInventory, error)
	FindBySKU(ctx context.Context, sku string) (*model.ProductInventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.ProductInventory, int, error)
	Update(ctx context.Context, inv *model.ProductInventory) error
	Delete(ctx context.Context, id string) error
	IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error)
	IsUPCUnique(ctx context.Context, upc, excludeID string) (bool, error)
	ClearDefault(ctx context.Context, productID, keepID string) error

	// Stock
	GetStock(ctx context.Context, inventoryID string) (*model.Stock, error)
	CreateStock(ctx context.Context, s *model.Stock) error
	EnsureStock(ctx context.Context, s *model.Stock) error
	AddUnits(ctx context.Context, inventoryID string, delta int, checkedAt time.Time) (bool, error)
	DecrementStock(ctx context.Context, inventoryID string, quantity int, checkedAt time.Time) (bool, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error
}
