package dto

type AddMediaInput struct {
	ID                 string
	ProductInventoryID string
	Image              string // empty falls back to the default placeholder
	AltText            string
	IsFeature          bool
}

type UpdateMediaInput struct {
	ID      string
	Image   string
	AltText string
}
