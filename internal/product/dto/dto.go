package dto

type ProductFilters struct {
	CategoryID  string
	IsActive    *bool
	SearchQuery string // matched against name and web_id
	SortBy      string // name, web_id, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
