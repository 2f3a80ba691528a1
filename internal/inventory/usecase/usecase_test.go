package usecase_test

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil/factory"
)

func newUseCase(t *testing.T) (inventory.UseCase, *factory.Factory) {
	db := testutil.NewDB(t)
	return usecase.NewInventoryUseCase(repository.NewRepository(db), testutil.Logger(t)), factory.New(t, db)
}

func newInput(f *factory.Factory, sku, upc string) *dto.CreateInventoryInput {
	return &dto.CreateInventoryInput{
		SKU:           sku,
		UPC:           upc,
		ProductTypeID: f.ProductType().ID,
		ProductID:     f.Product(nil).ID,
		BrandID:       f.Brand().ID,
		RetailPrice:   decimal.RequireFromString("97.00"),
		StorePrice:    decimal.RequireFromString("92.00"),
		SalePrice:     decimal.RequireFromString("46.00"),
		Weight:        987,
	}
}

func TestProductTypesAndBrands(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	shoes, err := uc.CreateProductType(ctx, "shoes")
	c.Assert(err, qt.IsNil)
	_, err = uc.CreateProductType(ctx, "audio")
	c.Assert(err, qt.IsNil)
	_, err = uc.CreateProductType(ctx, "shoes")
	c.Assert(errors.Is(err, apperror.ErrDuplicate), qt.IsTrue)
	_, err = uc.CreateProductType(ctx, "")
	c.Assert(errors.Is(err, apperror.ErrValidation), qt.IsTrue)

	types, err := uc.ListProductTypes(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(types, qt.HasLen, 2)
	c.Assert(types[0].Name, qt.Equals, "audio")

	got, err := uc.GetProductType(ctx, shoes.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, shoes)

	widstar, err := uc.CreateBrand(ctx, "widstar")
	c.Assert(err, qt.IsNil)
	_, err = uc.CreateBrand(ctx, "widstar")
	c.Assert(errors.Is(err, apperror.ErrDuplicate), qt.IsTrue)

	brands, err := uc.ListBrands(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(brands, qt.HasLen, 1)

	// referenced rows are protected
	f.ProductInventory(func(inv *model.ProductInventory) {
		inv.ProductTypeID = shoes.ID
		inv.BrandID = widstar.ID
	})
	c.Assert(errors.Is(uc.DeleteProductType(ctx, shoes.ID), apperror.ErrProtected), qt.IsTrue)
	c.Assert(errors.Is(uc.DeleteBrand(ctx, widstar.ID), apperror.ErrProtected), qt.IsTrue)

	unused := f.Brand()
	c.Assert(uc.DeleteBrand(ctx, unused.ID), qt.IsNil)
	_, err = uc.GetBrand(ctx, unused.ID)
	c.Assert(errors.Is(err, apperror.ErrNotFound), qt.IsTrue)
	c.Assert(errors.Is(uc.DeleteProductType(ctx, "missing"), apperror.ErrNotFound), qt.IsTrue)
}

func TestCreateInventory(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	inv, err := uc.CreateInventory(ctx, newInput(f, "7633969397", "934093051374"))
	c.Assert(err, qt.IsNil)
	c.Assert(inv.IsActive, qt.IsTrue)

	got, err := uc.GetInventoryBySKU(ctx, "7633969397")
	c.Assert(err, qt.IsNil)
	c.Assert(got.ID, qt.Equals, inv.ID)
	c.Assert(got.RetailPrice.Equal(decimal.NewFromInt(97)), qt.IsTrue)
	c.Assert(got.Weight, qt.Equals, 987.0)

	_, err = uc.GetInventoryBySKU(ctx, "nope")
	c.Assert(errors.Is(err, apperror.ErrNotFound), qt.IsTrue)
}

func TestCreateInventory_Uniqueness(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateInventory(ctx, newInput(f, "sku_a", "upc_a"))
	c.Assert(err, qt.IsNil)

	_, err = uc.CreateInventory(ctx, newInput(f, "sku_a", "upc_b"))
	c.Assert(errors.Is(err, apperror.ErrDuplicate), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `sku "sku_a": .*`)

	_, err = uc.CreateInventory(ctx, newInput(f, "sku_b", "upc_a"))
	c.Assert(errors.Is(err, apperror.ErrDuplicate), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `upc "upc_a": .*`)
}

func TestCreateInventory_Prices(t *testing.T) {
	tests := []struct {
		price string
		ok    bool
	}{
		{"0", true},
		{"999.99", true},
		{"1000.00", false},
		{"-1", false},
		{"10.001", false},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			c := qt.New(t)
			uc, f := newUseCase(t)

			in := newInput(f, "sku", "upc")
			in.RetailPrice = decimal.RequireFromString(tt.price)
			_, err := uc.CreateInventory(context.Background(), in)
			if tt.ok {
				c.Assert(err, qt.IsNil)
				return
			}
			var verr *apperror.ValidationError
			c.Assert(errors.As(err, &verr), qt.IsTrue)
			c.Assert(verr.HasField("retail_price"), qt.IsTrue)
		})
	}
}

func TestCreateInventory_InvalidReference(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)

	in := newInput(f, "sku", "upc")
	in.BrandID = "00000000-0000-0000-0000-000000000000"
	_, err := uc.CreateInventory(context.Background(), in)
	c.Assert(errors.Is(err, apperror.ErrInvalidReference), qt.IsTrue)
}

func TestInventory_SingleDefaultPerProduct(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	in := newInput(f, "sku_1", "upc_1")
	in.IsDefault = true
	first, err := uc.CreateInventory(ctx, in)
	c.Assert(err, qt.IsNil)

	in = newInput(f, "sku_2", "upc_2")
	in.ProductID = first.ProductID
	in.IsDefault = true
	second, err := uc.CreateInventory(ctx, in)
	c.Assert(err, qt.IsNil)

	got, err := uc.GetInventory(ctx, first.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.IsDefault, qt.IsFalse)

	// flip it back through an update
	_, err = uc.UpdateInventory(ctx, &dto.UpdateInventoryInput{
		ID: first.ID, SKU: first.SKU, UPC: first.UPC, ProductTypeID: first.ProductTypeID, BrandID: first.BrandID,
		IsActive: true, IsDefault: true,
		RetailPrice: first.RetailPrice, StorePrice: first.StorePrice, SalePrice: first.SalePrice, Weight: first.Weight,
	})
	c.Assert(err, qt.IsNil)

	got, err = uc.GetInventory(ctx, second.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.IsDefault, qt.IsFalse)

	variants, total, err := uc.ListInventory(ctx, &dto.InventoryFilters{ProductID: first.ProductID})
	c.Assert(err, qt.IsNil)
	c.Assert(total, qt.Equals, 2)
	c.Assert(variants[0].SKU, qt.Equals, "sku_1")
	c.Assert(variants[0].IsDefault, qt.IsTrue)
}

func TestUpdateInventory(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	taken := f.ProductInventory()
	inv := f.ProductInventory()

	update := &dto.UpdateInventoryInput{
		ID: inv.ID, SKU: taken.SKU, UPC: inv.UPC, ProductTypeID: inv.ProductTypeID, BrandID: inv.BrandID,
		RetailPrice: inv.RetailPrice, StorePrice: inv.StorePrice, SalePrice: inv.SalePrice, Weight: inv.Weight,
	}
	_, err := uc.UpdateInventory(ctx, update)
	c.Assert(errors.Is(err, apperror.ErrDuplicate), qt.IsTrue)

	update.SKU = inv.SKU
	update.SalePrice = decimal.RequireFromString("999.99")
	got, err := uc.UpdateInventory(ctx, update)
	c.Assert(err, qt.IsNil)
	c.Assert(got.IsActive, qt.IsFalse)

	got, err = uc.GetInventory(ctx, inv.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.SalePrice.String(), qt.Equals, "999.99")
	c.Assert(got.IsActive, qt.IsFalse)

	inactive := false
	_, total, err := uc.ListInventory(ctx, &dto.InventoryFilters{IsActive: &inactive})
	c.Assert(err, qt.IsNil)
	c.Assert(total, qt.Equals, 1)
}

func TestDeleteInventory(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	stocked := f.Stock()
	err := uc.DeleteInventory(ctx, stocked.ProductInventoryID)
	c.Assert(errors.Is(err, apperror.ErrProtected), qt.IsTrue)

	pictured := f.Media()
	err = uc.DeleteInventory(ctx, pictured.ProductInventoryID)
	c.Assert(errors.Is(err, apperror.ErrProtected), qt.IsTrue)

	bare := f.ProductInventory()
	c.Assert(uc.DeleteInventory(ctx, bare.ID), qt.IsNil)
	c.Assert(errors.Is(uc.DeleteInventory(ctx, bare.ID), apperror.ErrNotFound), qt.IsTrue)
}

func TestAdjustStock(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	inv := f.ProductInventory()

	s, err := uc.GetStock(ctx, inv.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(s.Units, qt.Equals, 0)
	c.Assert(s.LastChecked, qt.IsNil)

	s, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductInventoryID: inv.ID, Delta: 5})
	c.Assert(err, qt.IsNil)
	c.Assert(s.Units, qt.Equals, 5)
	c.Assert(s.LastChecked, qt.IsNotNil)

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductInventoryID: inv.ID, Delta: -6})
	c.Assert(errors.Is(err, apperror.ErrInsufficientStock), qt.IsTrue)

	s, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductInventoryID: inv.ID, Delta: -5})
	c.Assert(err, qt.IsNil)
	c.Assert(s.Units, qt.Equals, 0)

	s, err = uc.GetStock(ctx, inv.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(s.Units, qt.Equals, 0)
	c.Assert(s.ID, qt.Not(qt.Equals), "")

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductInventoryID: "missing", Delta: 1})
	c.Assert(errors.Is(err, apperror.ErrNotFound), qt.IsTrue)
}

func TestRecordSale(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	a := f.Stock(func(s *model.Stock) { s.Units, s.UnitsSold = 10, 0 })
	b := f.Stock(func(s *model.Stock) { s.Units, s.UnitsSold = 1, 0 })

	err := uc.RecordSale(ctx, []dto.SaleItem{
		{ProductInventoryID: a.ProductInventoryID, Quantity: 3},
		{ProductInventoryID: b.ProductInventoryID, Quantity: 2},
	})
	c.Assert(errors.Is(err, apperror.ErrInsufficientStock), qt.IsTrue)

	got, err := uc.GetStock(ctx, a.ProductInventoryID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Units, qt.Equals, 10)
	c.Assert(got.UnitsSold, qt.Equals, 0)

	err = uc.RecordSale(ctx, []dto.SaleItem{
		{ProductInventoryID: a.ProductInventoryID, Quantity: 3},
		{ProductInventoryID: b.ProductInventoryID, Quantity: 1},
	})
	c.Assert(err, qt.IsNil)

	got, err = uc.GetStock(ctx, a.ProductInventoryID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Units, qt.Equals, 7)
	c.Assert(got.UnitsSold, qt.Equals, 3)
	c.Assert(got.LastChecked, qt.IsNotNil)

	got, err = uc.GetStock(ctx, b.ProductInventoryID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Units, qt.Equals, 0)

	err = uc.RecordSale(ctx, []dto.SaleItem{{ProductInventoryID: a.ProductInventoryID, Quantity: 0}})
	c.Assert(errors.Is(err, apperror.ErrValidation), qt.IsTrue)

	// a variant without a stock row has nothing to sell
	bare := f.ProductInventory()
	err = uc.RecordSale(ctx, []dto.SaleItem{{ProductInventoryID: bare.ID, Quantity: 1}})
	c.Assert(errors.Is(err, apperror.ErrInsufficientStock), qt.IsTrue)
}
