// Package factory builds and stores valid catalog rows for tests. Every
// builder fills its required references with fresh rows from the matching
// sub-factory unless the caller sets them.
package factory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	categoryrepo "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	inventoryrepo "github.com/fekuna/omnipos-catalog-service/internal/inventory/repository"
	mediarepo "github.com/fekuna/omnipos-catalog-service/internal/media/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	productrepo "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Factory keeps one sequence per entity, starting at zero.
type Factory struct {
	t   testing.TB
	ctx context.Context

	categories *categoryrepo.SQLRepository
	products   *productrepo.SQLRepository
	inventory  *inventoryrepo.SQLRepository
	media      *mediarepo.SQLRepository

	seq map[string]int
	Now time.Time
}

func New(t testing.TB, db database.Queryer) *Factory {
	return &Factory{
		t:          t,
		ctx:        context.Background(),
		categories: categoryrepo.NewRepository(db),
		products:   productrepo.NewRepository(db),
		inventory:  inventoryrepo.NewRepository(db),
		media:      mediarepo.NewRepository(db),
		seq:        map[string]int{},
		Now:        time.Date(2021, 9, 4, 22, 14, 18, 0, time.UTC),
	}
}

func (f *Factory) next(kind string) int {
	n := f.seq[kind]
	f.seq[kind] = n + 1
	return n
}

func (f *Factory) must(what string, err error) {
	f.t.Helper()
	if err != nil {
		f.t.Fatalf("create %s: %v", what, err)
	}
}

// Category stores a category named cat_name_<n>. Set ParentID in an option
// to nest it.
func (f *Factory) Category(opts ...func(*model.Category)) *model.Category {
	f.t.Helper()
	c := &model.Category{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		Name:      fmt.Sprintf("cat_name_%d", f.next("category")),
		Slug:      gofakeit.Lexify("cat_name_?????"),
		IsActive:  true,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Path = model.CategoryPath("", c.ID)
	c.Level = 0
	if c.ParentID != nil {
		parent, err := f.categories.FindByID(f.ctx, *c.ParentID)
		f.must("category parent", err)
		if parent == nil {
			f.t.Fatalf("create category: parent %s does not exist", *c.ParentID)
		}
		c.Path = model.CategoryPath(parent.Path, c.ID)
		c.Level = parent.Level + 1
	}
	f.must("category", f.categories.Create(f.ctx, c))
	return c
}

// ChildOf nests a category under parent.
func ChildOf(parent *model.Category) func(*model.Category) {
	return func(c *model.Category) {
		id := parent.ID
		c.ParentID = &id
	}
}

// Named overrides the generated category name.
func Named(name string) func(*model.Category) {
	return func(c *model.Category) {
		c.Name = name
	}
}

// Product stores a product with web_id web_id_<n>. The categories are
// attached after the product row exists.
func (f *Factory) Product(categories []*model.Category, opts ...func(*model.Product)) *model.Product {
	f.t.Helper()
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String()},
		WebID:       fmt.Sprintf("web_id_%d", f.next("product")),
		Slug:        gofakeit.Lexify("prod_slug_??????"),
		Name:        gofakeit.Lexify("prod_name_??????"),
		Description: gofakeit.Sentence(12),
		IsActive:    true,
	}
	p.Touch(f.Now)
	for _, opt := range opts {
		opt(p)
	}
	f.must("product", f.products.Create(f.ctx, p))

	for _, c := range categories {
		p.CategoryIDs = append(p.CategoryIDs, c.ID)
	}
	f.must("product categories", f.products.AddCategories(f.ctx, p.ID, p.CategoryIDs...))
	return p
}

func (f *Factory) ProductType() *model.ProductType {
	f.t.Helper()
	pt := &model.ProductType{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		Name:      fmt.Sprintf("type_%d", f.next("product_type")),
	}
	f.must("product type", f.inventory.CreateType(f.ctx, pt))
	return pt
}

func (f *Factory) Brand() *model.Brand {
	f.t.Helper()
	b := &model.Brand{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		Name:      fmt.Sprintf("brand_%d", f.next("brand")),
	}
	f.must("brand", f.inventory.CreateBrand(f.ctx, b))
	return b
}

// ProductInventory stores a variant with sku sku_<n> and upc upc_<n>. A
// product, product type and brand are created for references left empty.
func (f *Factory) ProductInventory(opts ...func(*model.ProductInventory)) *model.ProductInventory {
	f.t.Helper()
	n := f.next("product_inventory")
	inv := &model.ProductInventory{
		BaseModel:   model.BaseModel{ID: uuid.New().String()},
		SKU:         fmt.Sprintf("sku_%d", n),
		UPC:         fmt.Sprintf("upc_%d", n),
		IsActive:    true,
		RetailPrice: decimal.NewFromInt(97),
		StorePrice:  decimal.NewFromInt(92),
		SalePrice:   decimal.NewFromInt(46),
		Weight:      987,
	}
	inv.Touch(f.Now)
	for _, opt := range opts {
		opt(inv)
	}
	if inv.ProductTypeID == "" {
		inv.ProductTypeID = f.ProductType().ID
	}
	if inv.ProductID == "" {
		inv.ProductID = f.Product(nil).ID
	}
	if inv.BrandID == "" {
		inv.BrandID = f.Brand().ID
	}
	f.must("product inventory", f.inventory.Create(f.ctx, inv))
	return inv
}

// Media stores a feature image using the default placeholder.
func (f *Factory) Media(opts ...func(*model.Media)) *model.Media {
	f.t.Helper()
	m := &model.Media{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		Image:     model.DefaultImage,
		AltText:   model.DefaultAltText,
		IsFeature: true,
	}
	m.Touch(f.Now)
	for _, opt := range opts {
		opt(m)
	}
	if m.ProductInventoryID == "" {
		m.ProductInventoryID = f.ProductInventory().ID
	}
	f.must("media", f.media.Create(f.ctx, m))
	return m
}

func (f *Factory) Stock(opts ...func(*model.Stock)) *model.Stock {
	f.t.Helper()
	s := &model.Stock{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		Units:     2,
		UnitsSold: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ProductInventoryID == "" {
		s.ProductInventoryID = f.ProductInventory().ID
	}
	f.must("stock", f.inventory.CreateStock(f.ctx, s))
	return s
}
