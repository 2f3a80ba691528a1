package dto

import "github.com/shopspring/decimal"

type CreateInventoryInput struct {
	ID            string
	SKU           string
	UPC           string
	ProductTypeID string
	ProductID     string
	BrandID       string
	IsActive      *bool
	IsDefault     bool
	RetailPrice   decimal.Decimal
	StorePrice    decimal.Decimal
	SalePrice     decimal.Decimal
	Weight        float64
}

type UpdateInventoryInput struct {
	ID            string
	SKU           string
	UPC           string
	ProductTypeID string
	BrandID       string
	IsActive      bool
	IsDefault     bool
	RetailPrice   decimal.Decimal
	StorePrice    decimal.Decimal
	SalePrice     decimal.Decimal
	Weight        float64
}

// AdjustStockInput moves the unit count of a variant by Delta, which may be
// negative.
type AdjustStockInput struct {
	ProductInventoryID string
	Delta              int
}

type SaleItem struct {
	ProductInventoryID string
	Quantity           int
}
