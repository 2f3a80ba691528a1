package model

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestCategoryPath(t *testing.T) {
	c := qt.New(t)
	c.Assert(CategoryPath("", "a"), qt.Equals, "/a/")
	c.Assert(CategoryPath("/a/", "b"), qt.Equals, "/a/b/")
}

func TestCategory_AncestorIDs(t *testing.T) {
	c := qt.New(t)

	root := Category{BaseModel: BaseModel{ID: "a"}, Path: "/a/"}
	c.Assert(root.AncestorIDs(), qt.IsNil)
	c.Assert(root.IsRoot(), qt.IsTrue)

	leaf := Category{BaseModel: BaseModel{ID: "c"}, Path: "/a/b/c/"}
	c.Assert(leaf.AncestorIDs(), qt.DeepEquals, []string{"a", "b"})
}

func TestCategory_IsDescendantOf(t *testing.T) {
	c := qt.New(t)

	a := &Category{BaseModel: BaseModel{ID: "a"}, Path: "/a/"}
	b := &Category{BaseModel: BaseModel{ID: "b"}, Path: "/a/b/"}
	ab := &Category{BaseModel: BaseModel{ID: "ab"}, Path: "/ab/"}

	c.Assert(b.IsDescendantOf(a), qt.IsTrue)
	c.Assert(a.IsDescendantOf(b), qt.IsFalse)
	c.Assert(a.IsDescendantOf(a), qt.IsFalse)
	// the trailing slash keeps /ab/ out of /a/'s subtree
	c.Assert(ab.IsDescendantOf(a), qt.IsFalse)
}

func TestTimestamps_Touch(t *testing.T) {
	c := qt.New(t)

	first := time.Date(2021, 9, 4, 22, 14, 18, 0, time.UTC)
	var ts Timestamps
	ts.Touch(first)
	c.Assert(ts.CreatedAt, qt.Equals, first)
	c.Assert(ts.UpdatedAt, qt.Equals, first)

	later := first.Add(time.Hour)
	ts.Touch(later)
	c.Assert(ts.CreatedAt, qt.Equals, first)
	c.Assert(ts.UpdatedAt, qt.Equals, later)
}

func TestMedia_ApplyDefaults(t *testing.T) {
	c := qt.New(t)

	m := Media{}
	m.ApplyDefaults()
	c.Assert(m.Image, qt.Equals, DefaultImage)

	m = Media{Image: "images/shoe.png"}
	m.ApplyDefaults()
	c.Assert(m.Image, qt.Equals, "images/shoe.png")
}
