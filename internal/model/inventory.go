package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductType struct {
	BaseModel
	Name string `db:"name" json:"name" validate:"required,max=255"`
}

type Brand struct {
	BaseModel
	Name string `db:"name" json:"name" validate:"required,max=255"`
}

// ProductInventory is a sellable variant of a Product.
type ProductInventory struct {
	BaseModel
	SKU           string          `db:"sku" json:"sku" validate:"required,max=20"`
	UPC           string          `db:"upc" json:"upc" validate:"required,max=12"`
	ProductTypeID string          `db:"product_type_id" json:"product_type" validate:"required"`
	ProductID     string          `db:"product_id" json:"product" validate:"required"`
	BrandID       string          `db:"brand_id" json:"brand" validate:"required"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	IsDefault     bool            `db:"is_default" json:"is_default"`
	RetailPrice   decimal.Decimal `db:"retail_price" json:"retail_price" validate:"price"`
	StorePrice    decimal.Decimal `db:"store_price" json:"store_price" validate:"price"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"sale_price" validate:"price"`
	Weight        float64         `db:"weight" json:"weight" validate:"gte=0"`
	Timestamps
}

type Stock struct {
	BaseModel
	ProductInventoryID string     `db:"product_inventory_id" json:"product_inventory" validate:"required"`
	LastChecked        *time.Time `db:"last_checked" json:"last_checked"`
	Units              int        `db:"units" json:"units" validate:"gte=0"`
	UnitsSold          int        `db:"units_sold" json:"units_sold" validate:"gte=0"`
}
