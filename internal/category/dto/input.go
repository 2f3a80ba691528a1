package dto

type CreateCategoryInput struct {
	ID       string // optional, generated when empty
	ParentID *string
	Name     string
	Slug     string
	IsActive *bool // defaults to true
}

// UpdateCategoryInput replaces every mutable field. A ParentID different
// from the current parent moves the category together with its subtree.
type UpdateCategoryInput struct {
	ID       string
	ParentID *string
	Name     string
	Slug     string
	IsActive bool
}
