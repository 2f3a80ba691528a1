package dto

type CreateProductInput struct {
	WebID       string
	Slug        string
	Name        string
	Description string
	IsActive    *bool // defaults to true
	CategoryIDs []string
}

type UpdateProductInput struct {
	ID          string
	WebID       string
	Slug        string
	Name        string
	Description string
	IsActive    bool
}
