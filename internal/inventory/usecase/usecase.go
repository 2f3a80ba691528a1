package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewInventoryUseCase(repo inventory.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

func (uc *inventoryUseCase) CreateProductType(ctx context.Context, name string) (*model.ProductType, error) {
	t := &model.ProductType{BaseModel: model.BaseModel{ID: uuid.New().String()}, Name: strings.TrimSpace(name)}
	if err := validation.Struct(t); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *inventoryUseCase) GetProductType(ctx context.Context, id string) (*model.ProductType, error) {
	t, err := uc.repo.FindTypeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("product type %s: %w", id, apperror.ErrNotFound)
	}
	return t, nil
}

func (uc *inventoryUseCase) ListProductTypes(ctx context.Context) ([]model.ProductType, error) {
	return uc.repo.FindTypes(ctx)
}

func (uc *inventoryUseCase) DeleteProductType(ctx context.Context, id string) error {
	if _, err := uc.GetProductType(ctx, id); err != nil {
		return err
	}
	return uc.repo.DeleteType(ctx, id)
}

func (uc *inventoryUseCase) CreateBrand(ctx context.Context, name string) (*model.Brand, error) {
	b := &model.Brand{BaseModel: model.BaseModel{ID: uuid.New().String()}, Name: strings.TrimSpace(name)}
	if err := validation.Struct(b); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateBrand(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *inventoryUseCase) GetBrand(ctx context.Context, id string) (*model.Brand, error) {
	b, err := uc.repo.FindBrandByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("brand %s: %w", id, apperror.ErrNotFound)
	}
	return b, nil
}

func (uc *inventoryUseCase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	return uc.repo.FindBrands(ctx)
}

func (uc *inventoryUseCase) DeleteBrand(ctx context.Context, id string) error {
	if _, err := uc.GetBrand(ctx, id); err != nil {
		return err
	}
	return uc.repo.DeleteBrand(ctx, id)
}

func (uc *inventoryUseCase) CreateInventory(ctx context.Context, input *dto.CreateInventoryInput) (*model.ProductInventory, error) {
	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	inv := &model.ProductInventory{
		BaseModel:     model.BaseModel{ID: id},
		SKU:           input.SKU,
		UPC:           input.UPC,
		ProductTypeID: input.ProductTypeID,
		ProductID:     input.ProductID,
		BrandID:       input.BrandID,
		IsActive:      isActive,
		IsDefault:     input.IsDefault,
		RetailPrice:   input.RetailPrice,
		StorePrice:    input.StorePrice,
		SalePrice:     input.SalePrice,
		Weight:        input.Weight,
	}
	inv.Touch(uc.now())
	if err := validation.Struct(inv); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, inv, ""); err != nil {
		return nil, err
	}

	err := uc.repo.WithTx(ctx, func(repo inventory.Repository) error {
		if err := repo.Create(ctx, inv); err != nil {
			return err
		}
		if inv.IsDefault {
			return repo.ClearDefault(ctx, inv.ProductID, inv.ID)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to create product inventory", zap.String("sku", inv.SKU), zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (uc *inventoryUseCase) GetInventory(ctx context.Context, id string) (*model.ProductInventory, error) {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("product inventory %s: %w", id, apperror.ErrNotFound)
	}
	return inv, nil
}

func (uc *inventoryUseCase) GetInventoryBySKU(ctx context.Context, sku string) (*model.ProductInventory, error) {
	inv, err := uc.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("product inventory sku %q: %w", sku, apperror.ErrNotFound)
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.ProductInventory, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) UpdateInventory(ctx context.Context, input *dto.UpdateInventoryInput) (*model.ProductInventory, error) {
	inv, err := uc.GetInventory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	inv.SKU = input.SKU
	inv.UPC = input.UPC
	inv.ProductTypeID = input.ProductTypeID
	inv.BrandID = input.BrandID
	inv.IsActive = input.IsActive
	inv.IsDefault = input.IsDefault
	inv.RetailPrice = input.RetailPrice
	inv.StorePrice = input.StorePrice
	inv.SalePrice = input.SalePrice
	inv.Weight = input.Weight
	inv.Touch(uc.now())
	if err := validation.Struct(inv); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, inv, inv.ID); err != nil {
		return nil, err
	}

	err = uc.repo.WithTx(ctx, func(repo inventory.Repository) error {
		if err := repo.Update(ctx, inv); err != nil {
			return err
		}
		if inv.IsDefault {
			return repo.ClearDefault(ctx, inv.ProductID, inv.ID)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to update product inventory", zap.String("id", inv.ID), zap.Error(err))
		return nil, err
	}
	return inv, nil
}

// DeleteInventory fails with apperror.ErrProtected while stock or media rows
// reference the variant.
func (uc *inventoryUseCase) DeleteInventory(ctx context.Context, id string) error {
	if _, err := uc.GetInventory(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *inventoryUseCase) checkUnique(ctx context.Context, inv *model.ProductInventory, excludeID string) error {
	unique, err := uc.repo.IsSKUUnique(ctx, inv.SKU, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return fmt.Errorf("sku %q: %w", inv.SKU, apperror.ErrDuplicate)
	}
	unique, err = uc.repo.IsUPCUnique(ctx, inv.UPC, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return fmt.Errorf("upc %q: %w", inv.UPC, apperror.ErrDuplicate)
	}
	return nil
}

// GetStock returns the stock row of a variant, or a zero row when none has
// been recorded yet.
func (uc *inventoryUseCase) GetStock(ctx context.Context, inventoryID string) (*model.Stock, error) {
	if _, err := uc.GetInventory(ctx, inventoryID); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetStock(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &model.Stock{ProductInventoryID: inventoryID}, nil
	}
	return s, nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Stock, error) {
	if _, err := uc.GetInventory(ctx, input.ProductInventoryID); err != nil {
		return nil, err
	}

	var out *model.Stock
	err := uc.repo.WithTx(ctx, func(repo inventory.Repository) error {
		err := repo.EnsureStock(ctx, &model.Stock{
			BaseModel:          model.BaseModel{ID: uuid.New().String()},
			ProductInventoryID: input.ProductInventoryID,
		})
		if err != nil {
			return err
		}

		ok, err := repo.AddUnits(ctx, input.ProductInventoryID, input.Delta, uc.now())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("adjust %s by %d: %w",
				input.ProductInventoryID, input.Delta, apperror.ErrInsufficientStock)
		}

		out, err = repo.GetStock(ctx, input.ProductInventoryID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("stock adjusted",
		zap.String("product_inventory_id", out.ProductInventoryID),
		zap.Int("delta", input.Delta),
		zap.Int("units", out.Units))
	return out, nil
}

// RecordSale moves the sold quantities from units to units_sold for every
// item, or for none of them.
func (uc *inventoryUseCase) RecordSale(ctx context.Context, items []dto.SaleItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return apperror.Invalid("quantity", "gt", "ensure this value is greater than 0")
		}
	}

	return uc.repo.WithTx(ctx, func(repo inventory.Repository) error {
		now := uc.now()
		for _, item := range items {
			ok, err := repo.DecrementStock(ctx, item.ProductInventoryID, item.Quantity, now)
			if err != nil {
				return err
			}
			if !ok {
				uc.logger.Warn("sale rejected",
					zap.String("product_inventory_id", item.ProductInventoryID),
					zap.Int("quantity", item.Quantity))
				return fmt.Errorf("sell %d of %s: %w", item.Quantity, item.ProductInventoryID, apperror.ErrInsufficientStock)
			}
		}
		return nil
	})
}
