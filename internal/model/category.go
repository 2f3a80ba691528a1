package model

import (
	"strings"
	"unicode/utf8"
)

type Category struct {
	BaseModel
	Name     string     `db:"name" json:"name" validate:"required,max=100"`
	Slug     string     `db:"slug" json:"slug" validate:"required,max=150,slug"`
	IsActive bool       `db:"is_active" json:"is_active"`
	ParentID *string    `db:"parent_id" json:"parent"`
	Path     string     `db:"path" json:"-"`  // "/<root id>/.../<id>/"
	Level    int        `db:"level" json:"-"` // 0 for roots
	Children []Category `db:"-" json:"children,omitempty"`
}

// AncestorIDs returns the ids on the path from the root down to, but not
// including, the category itself.
func (c *Category) AncestorIDs() []string {
	ids := strings.Split(strings.Trim(c.Path, "/"), "/")
	if len(ids) <= 1 {
		return nil
	}
	return ids[:len(ids)-1]
}

// IsDescendantOf reports whether c lies strictly below other in the tree.
func (c *Category) IsDescendantOf(other *Category) bool {
	return c.ID != other.ID && strings.HasPrefix(c.Path, other.Path)
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryPath builds the materialized path of a node with the given id
// under parentPath ("" for roots).
func CategoryPath(parentPath, id string) string {
	if parentPath == "" {
		parentPath = "/"
	}
	return parentPath + id + "/"
}

// PathLen is the length of path in characters, the unit SQL SUBSTR counts in.
func PathLen(path string) int {
	return utf8.RuneCountInString(path)
}

// ValidCategoryID reports whether id can be encoded in a materialized path.
func ValidCategoryID(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}
