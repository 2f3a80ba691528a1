package model

import "time"

type AdminUser struct {
	BaseModel
	Username     string     `db:"username" json:"username" validate:"required,max=150"`
	Email        string     `db:"email" json:"email" validate:"omitempty,email,max=254"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsStaff      bool       `db:"is_staff" json:"is_staff"`
	IsSuperuser  bool       `db:"is_superuser" json:"is_superuser"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	DateJoined   time.Time  `db:"date_joined" json:"date_joined"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
}
