package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}
	if !model.ValidCategoryID(id) {
		return nil, apperror.Invalid("id", "path", "category ids must not contain \"/\"")
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	cat := &model.Category{
		BaseModel: model.BaseModel{ID: id},
		Name:      input.Name,
		Slug:      input.Slug,
		IsActive:  isActive,
		Path:      model.CategoryPath("", id),
	}
	if err := validation.Struct(cat); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("parent category %s: %w", *input.ParentID, apperror.ErrNotFound)
		}
		parentID := parent.ID
		cat.ParentID = &parentID
		cat.Path = model.CategoryPath(parent.Path, id)
		cat.Level = parent.Level + 1
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		uc.logger.Error("failed to create category", zap.String("name", cat.Name), zap.Error(err))
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return uc.mustFind(ctx, id)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) ListChildren(ctx context.Context, parentID *string) ([]model.Category, error) {
	if parentID != nil {
		if _, err := uc.mustFind(ctx, *parentID); err != nil {
			return nil, err
		}
	}
	children, err := uc.repo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	SortByName(children)
	return children, nil
}

// GetAncestors returns the chain from the root down to the category's
// parent, or to the category itself when includeSelf is set.
func (uc *categoryUseCase) GetAncestors(ctx context.Context, id string, includeSelf bool) ([]model.Category, error) {
	cat, err := uc.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	ancestors, err := uc.repo.FindByIDs(ctx, cat.AncestorIDs())
	if err != nil {
		return nil, err
	}
	if includeSelf {
		ancestors = append(ancestors, *cat)
	}
	return ancestors, nil
}

// GetDescendants returns the subtree below id in depth-first order with
// siblings sorted by name.
func (uc *categoryUseCase) GetDescendants(ctx context.Context, id string, includeSelf bool) ([]model.Category, error) {
	cat, err := uc.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	nodes, err := uc.repo.FindSubtree(ctx, cat)
	if err != nil {
		return nil, err
	}

	ordered := Flatten(BuildTree(nodes, cat.ParentID))
	if !includeSelf && len(ordered) > 0 {
		ordered = ordered[1:]
	}
	return ordered, nil
}

// GetTree returns the nested subtree rooted at rootID, or the whole forest
// when rootID is nil.
func (uc *categoryUseCase) GetTree(ctx context.Context, rootID *string) ([]model.Category, error) {
	if rootID == nil {
		all, _, err := uc.repo.FindAll(ctx, &dto.CategoryFilters{})
		if err != nil {
			return nil, err
		}
		return BuildTree(all, nil), nil
	}

	root, err := uc.mustFind(ctx, *rootID)
	if err != nil {
		return nil, err
	}
	nodes, err := uc.repo.FindSubtree(ctx, root)
	if err != nil {
		return nil, err
	}
	return BuildTree(nodes, root.ParentID), nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.mustFind(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	cat.Name = input.Name
	cat.Slug = input.Slug
	cat.IsActive = input.IsActive
	if err := validation.Struct(cat); err != nil {
		return nil, err
	}

	if sameParent(cat.ParentID, input.ParentID) {
		if err := uc.repo.Update(ctx, cat); err != nil {
			return nil, err
		}
		return cat, nil
	}

	path := model.CategoryPath("", cat.ID)
	level := 0
	var parentID *string
	if input.ParentID != nil {
		parent, err := uc.mustFind(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ID == cat.ID || parent.IsDescendantOf(cat) {
			return nil, fmt.Errorf("move %s under %s: %w", cat.ID, parent.ID, apperror.ErrCycle)
		}
		id := parent.ID
		parentID = &id
		path = model.CategoryPath(parent.Path, cat.ID)
		level = parent.Level + 1
	}

	err = uc.repo.WithTx(ctx, func(repo category.Repository) error {
		if err := repo.Update(ctx, cat); err != nil {
			return err
		}
		return repo.MoveSubtree(ctx, cat, parentID, path, level)
	})
	if err != nil {
		uc.logger.Error("failed to move category", zap.String("id", cat.ID), zap.Error(err))
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses to remove a category that still has children.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.mustFind(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Warn("failed to delete category", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (uc *categoryUseCase) mustFind(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("category %s: %w", id, apperror.ErrNotFound)
	}
	return cat, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
