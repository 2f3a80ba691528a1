package model

type Product struct {
	BaseModel
	WebID       string `db:"web_id" json:"web_id" validate:"required,max=50"`
	Slug        string `db:"slug" json:"slug" validate:"required,max=255,slug"`
	Name        string `db:"name" json:"name" validate:"required,max=255"`
	Description string `db:"description" json:"description" validate:"required"`
	IsActive    bool   `db:"is_active" json:"is_active"`
	Timestamps
	CategoryIDs []string `db:"-" json:"category"`
}
