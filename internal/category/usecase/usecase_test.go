package usecase_test

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil/factory"
)

func newUseCase(t *testing.T) (category.UseCase, *factory.Factory) {
	db := testutil.NewDB(t)
	return usecase.NewCategoryUseCase(repository.NewRepository(db), testutil.Logger(t)), factory.New(t, db)
}

func create(c *qt.C, uc category.UseCase, name string, parent *model.Category) *model.Category {
	in := &dto.CreateCategoryInput{Name: name, Slug: name}
	if parent != nil {
		id := parent.ID
		in.ParentID = &id
	}
	cat, err := uc.CreateCategory(context.Background(), in)
	c.Assert(err, qt.IsNil)
	return cat
}

func names(nodes []model.Category) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestCreateCategory(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	root := create(c, uc, "fashion", nil)
	c.Assert(root.ParentID, qt.IsNil)
	c.Assert(root.Level, qt.Equals, 0)
	c.Assert(root.IsActive, qt.IsTrue)
	c.Assert(root.Path, qt.Equals, "/"+root.ID+"/")

	men := create(c, uc, "men", root)
	c.Assert(*men.ParentID, qt.Equals, root.ID)
	c.Assert(men.Level, qt.Equals, 1)
	c.Assert(men.Path, qt.Equals, root.Path+men.ID+"/")

	got, err := uc.GetCategory(ctx, men.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, men)
}

func TestCreateCategory_Invalid(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	missing := "00000000-0000-0000-0000-000000000000"
	_, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "orphan", Slug: "orphan", ParentID: &missing})
	c.Assert(errors.Is(err, apperror.ErrNotFound), qt.IsTrue)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "bad", Slug: "not a slug"})
	c.Assert(errors.Is(err, apperror.ErrValidation), qt.IsTrue)

	_, err = uc.GetCategory(ctx, missing)
	c.Assert(errors.Is(err, apperror.ErrNotFound), qt.IsTrue)
}

func TestListChildren_OrderedByName(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	root := create(c, uc, "fashion", nil)
	for _, name := range []string{"shoes", "accessories", "boots"} {
		create(c, uc, name, root)
	}
	create(c, uc, "electronics", nil)

	children, err := uc.ListChildren(ctx, &root.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(names(children), qt.DeepEquals, []string{"accessories", "boots", "shoes"})

	roots, err := uc.ListChildren(ctx, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(names(roots), qt.DeepEquals, []string{"electronics", "fashion"})
}

func TestAncestorsAndDescendants(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	root := create(c, uc, "fashion", nil)
	women := create(c, uc, "women", root)
	men := create(c, uc, "men", root)
	shoes := create(c, uc, "shoes", men)
	boots := create(c, uc, "boots", shoes)

	ancestors, err := uc.GetAncestors(ctx, boots.ID, false)
	c.Assert(err, qt.IsNil)
	c.Assert(names(ancestors), qt.DeepEquals, []string{"fashion", "men", "shoes"})

	ancestors, err = uc.GetAncestors(ctx, boots.ID, true)
	c.Assert(err, qt.IsNil)
	c.Assert(names(ancestors), qt.DeepEquals, []string{"fashion", "men", "shoes", "boots"})

	ancestors, err = uc.GetAncestors(ctx, root.ID, false)
	c.Assert(err, qt.IsNil)
	c.Assert(ancestors, qt.HasLen, 0)

	descendants, err := uc.GetDescendants(ctx, root.ID, false)
	c.Assert(err, qt.IsNil)
	c.Assert(names(descendants), qt.DeepEquals, []string{"men", "shoes", "boots", "women"})

	descendants, err = uc.GetDescendants(ctx, men.ID, true)
	c.Assert(err, qt.IsNil)
	c.Assert(names(descendants), qt.DeepEquals, []string{"men", "shoes", "boots"})

	descendants, err = uc.GetDescendants(ctx, women.ID, false)
	c.Assert(err, qt.IsNil)
	c.Assert(descendants, qt.HasLen, 0)
}

func TestGetTree(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	root := create(c, uc, "fashion", nil)
	men := create(c, uc, "men", root)
	create(c, uc, "women", root)
	create(c, uc, "shoes", men)
	create(c, uc, "electronics", nil)

	forest, err := uc.GetTree(ctx, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(names(forest), qt.DeepEquals, []string{"electronics", "fashion"})
	c.Assert(names(forest[1].Children), qt.DeepEquals, []string{"men", "women"})
	c.Assert(names(forest[1].Children[0].Children), qt.DeepEquals, []string{"shoes"})

	sub, err := uc.GetTree(ctx, &men.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(names(sub), qt.DeepEquals, []string{"men"})
	c.Assert(names(sub[0].Children), qt.DeepEquals, []string{"shoes"})
}

func TestUpdateCategory_MovesSubtree(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	fashion := create(c, uc, "fashion", nil)
	men := create(c, uc, "men", fashion)
	shoes := create(c, uc, "shoes", men)
	boots := create(c, uc, "boots", shoes)
	sport := create(c, uc, "sport", nil)

	moved, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID: shoes.ID, ParentID: &sport.ID, Name: "footwear", Slug: "footwear", IsActive: true,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*moved.ParentID, qt.Equals, sport.ID)
	c.Assert(moved.Level, qt.Equals, 1)
	c.Assert(moved.Path, qt.Equals, sport.Path+shoes.ID+"/")

	got, err := uc.GetCategory(ctx, boots.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Level, qt.Equals, 2)
	c.Assert(got.Path, qt.Equals, sport.Path+shoes.ID+"/"+boots.ID+"/")

	children, err := uc.ListChildren(ctx, &men.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(children, qt.HasLen, 0)

	// promote to a root
	moved, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID: shoes.ID, Name: "footwear", Slug: "footwear", IsActive: true,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(moved.ParentID, qt.IsNil)
	c.Assert(moved.Level, qt.Equals, 0)

	got, err = uc.GetCategory(ctx, boots.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Level, qt.Equals, 1)
	c.Assert(got.Path, qt.Equals, "/"+shoes.ID+"/"+boots.ID+"/")
}

func TestUpdateCategory_RejectsCycles(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	root := create(c, uc, "fashion", nil)
	men := create(c, uc, "men", root)
	shoes := create(c, uc, "shoes", men)

	for _, target := range []*model.Category{root, shoes} {
		_, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
			ID: root.ID, ParentID: &target.ID, Name: root.Name, Slug: root.Slug, IsActive: true,
		})
		c.Assert(errors.Is(err, apperror.ErrCycle), qt.IsTrue, qt.Commentf("target %s", target.Name))
	}

	got, err := uc.GetCategory(ctx, root.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.ParentID, qt.IsNil)
}

func TestUpdateCategory_RenameKeepsPlace(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	root := create(c, uc, "fashion", nil)
	men := create(c, uc, "men", root)

	got, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID: men.ID, ParentID: &root.ID, Name: "gentlemen", Slug: "gentlemen", IsActive: false,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, "gentlemen")
	c.Assert(got.IsActive, qt.IsFalse)
	c.Assert(got.Path, qt.Equals, men.Path)

	inactive := false
	list, total, err := uc.ListCategories(ctx, &dto.CategoryFilters{IsActive: &inactive})
	c.Assert(err, qt.IsNil)
	c.Assert(total, qt.Equals, 1)
	c.Assert(names(list), qt.DeepEquals, []string{"gentlemen"})
}

func TestDeleteCategory(t *testing.T) {
	c := qt.New(t)
	uc, f := newUseCase(t)
	ctx := context.Background()

	root := create(c, uc, "fashion", nil)
	men := create(c, uc, "men", root)

	err := uc.DeleteCategory(ctx, root.ID)
	c.Assert(errors.Is(err, apperror.ErrProtected), qt.IsTrue)

	// product links do not protect a category
	f.Product([]*model.Category{men})
	c.Assert(uc.DeleteCategory(ctx, men.ID), qt.IsNil)
	c.Assert(uc.DeleteCategory(ctx, root.ID), qt.IsNil)

	err = uc.DeleteCategory(ctx, root.ID)
	c.Assert(errors.Is(err, apperror.ErrNotFound), qt.IsTrue)
}

func TestListCategories_Paging(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	root := create(c, uc, "fashion", nil)
	for _, name := range []string{"a", "b", "c"} {
		create(c, uc, name, root)
	}

	page, total, err := uc.ListCategories(ctx, &dto.CategoryFilters{ParentID: &root.ID, Page: 2, PageSize: 2})
	c.Assert(err, qt.IsNil)
	c.Assert(total, qt.Equals, 3)
	c.Assert(names(page), qt.DeepEquals, []string{"c"})

	rootsOnly := ""
	roots, total, err := uc.ListCategories(ctx, &dto.CategoryFilters{ParentID: &rootsOnly})
	c.Assert(err, qt.IsNil)
	c.Assert(total, qt.Equals, 1)
	c.Assert(names(roots), qt.DeepEquals, []string{"fashion"})
}

func createWithID(c *qt.C, uc category.UseCase, id string, parent *model.Category) *model.Category {
	in := &dto.CreateCategoryInput{ID: id, Name: id, Slug: "slug"}
	if parent != nil {
		in.ParentID = &parent.ID
	}
	cat, err := uc.CreateCategory(context.Background(), in)
	c.Assert(err, qt.IsNil)
	return cat
}

func TestSubtree_IDsAreMatchedExactly(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)
	ctx := context.Background()

	wild := createWithID(c, uc, "a_b", nil)
	createWithID(c, uc, "wild-child", wild)
	other := createWithID(c, uc, "axb", nil)
	otherChild := createWithID(c, uc, "axb-child", other)
	percent := createWithID(c, uc, "a%", nil)
	upper := createWithID(c, uc, "Up", nil)
	createWithID(c, uc, "up", nil)
	target := createWithID(c, uc, "zz", nil)

	below, err := uc.GetDescendants(ctx, wild.ID, false)
	c.Assert(err, qt.IsNil)
	c.Assert(names(below), qt.DeepEquals, []string{"wild-child"})

	below, err = uc.GetDescendants(ctx, percent.ID, false)
	c.Assert(err, qt.IsNil)
	c.Assert(below, qt.HasLen, 0)

	below, err = uc.GetDescendants(ctx, upper.ID, true)
	c.Assert(err, qt.IsNil)
	c.Assert(names(below), qt.DeepEquals, []string{"Up"})

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID: wild.ID, ParentID: &target.ID, Name: wild.Name, Slug: wild.Slug, IsActive: true,
	})
	c.Assert(err, qt.IsNil)

	got, err := uc.GetCategory(ctx, other.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Path, qt.Equals, "/axb/")
	c.Assert(got.Level, qt.Equals, 0)

	got, err = uc.GetCategory(ctx, otherChild.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Path, qt.Equals, "/axb/axb-child/")

	got, err = uc.GetCategory(ctx, "wild-child")
	c.Assert(err, qt.IsNil)
	c.Assert(got.Path, qt.Equals, "/zz/a_b/wild-child/")
	c.Assert(got.Level, qt.Equals, 2)
}

func TestCreateCategory_RejectsSlashInID(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase(t)

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{ID: "a/b", Name: "a", Slug: "a"})
	var verr *apperror.ValidationError
	c.Assert(errors.As(err, &verr), qt.IsTrue)
	c.Assert(verr.HasField("id"), qt.IsTrue)
}
