package dto

type InventoryFilters struct {
	ProductID     string
	BrandID       string
	ProductTypeID string
	IsActive      *bool
	Page          int
	PageSize      int
}
