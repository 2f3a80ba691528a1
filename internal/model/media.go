package model

const (
	DefaultImage   = "images/default.png"
	DefaultAltText = "a default image solid color"
)

type Media struct {
	BaseModel
	ProductInventoryID string `db:"product_inventory_id" json:"product_inventory" validate:"required"`
	Image              string `db:"image" json:"image" validate:"required,max=255"`
	AltText            string `db:"alt_text" json:"alt_text" validate:"required,max=255"`
	IsFeature          bool   `db:"is_feature" json:"is_feature"`
	Timestamps
}

// ApplyDefaults fills the image fallback used when no upload was provided.
func (m *Media) ApplyDefaults() {
	if m.Image == "" {
		m.Image = DefaultImage
	}
}
