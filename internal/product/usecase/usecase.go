package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo       product.Repository
	categories category.Repository
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewProductUseCase(repo product.Repository, categories category.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		categories: categories,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String()},
		WebID:       input.WebID,
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    isActive,
	}
	p.Touch(uc.now())
	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsWebIDUnique(ctx, p.WebID, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, fmt.Errorf("web_id %q: %w", p.WebID, apperror.ErrDuplicate)
	}

	err = uc.repo.WithTx(ctx, func(repo product.Repository) error {
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
		return repo.AddCategories(ctx, p.ID, input.CategoryIDs...)
	})
	if err != nil {
		uc.logger.Error("failed to create product", zap.String("web_id", p.WebID), zap.Error(err))
		return nil, err
	}

	p.CategoryIDs, err = uc.repo.CategoryIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withCategories(ctx, p, id)
}

func (uc *productUseCase) GetProductByWebID(ctx context.Context, webID string) (*model.Product, error) {
	p, err := uc.repo.FindByWebID(ctx, webID)
	if err != nil {
		return nil, err
	}
	return uc.withCategories(ctx, p, webID)
}

func (uc *productUseCase) withCategories(ctx context.Context, p *model.Product, key string) (*model.Product, error) {
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", key, apperror.ErrNotFound)
	}
	ids, err := uc.repo.CategoryIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.CategoryIDs = ids
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", input.ID, apperror.ErrNotFound)
	}

	if p.WebID != input.WebID {
		unique, err := uc.repo.IsWebIDUnique(ctx, input.WebID, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, fmt.Errorf("web_id %q: %w", input.WebID, apperror.ErrDuplicate)
		}
	}

	p.WebID = input.WebID
	p.Slug = input.Slug
	p.Name = input.Name
	p.Description = input.Description
	p.IsActive = input.IsActive
	p.Touch(uc.now())
	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.withCategories(ctx, p, p.ID)
}

// DeleteProduct fails with apperror.ErrProtected while inventory rows
// reference the product.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("product %s: %w", id, apperror.ErrNotFound)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Warn("failed to delete product", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (uc *productUseCase) AttachCategories(ctx context.Context, productID string, categoryIDs ...string) error {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("product %s: %w", productID, apperror.ErrNotFound)
	}
	return uc.repo.WithTx(ctx, func(repo product.Repository) error {
		return repo.AddCategories(ctx, productID, categoryIDs...)
	})
}

func (uc *productUseCase) DetachCategory(ctx context.Context, productID, categoryID string) error {
	return uc.repo.RemoveCategory(ctx, productID, categoryID)
}

// ListByCategory lists products linked to categoryID, and with
// includeDescendants also those linked anywhere below it.
func (uc *productUseCase) ListByCategory(ctx context.Context, categoryID string, includeDescendants bool) ([]model.Product, error) {
	cat, err := uc.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, apperror.ErrNotFound)
	}

	if includeDescendants {
		return uc.repo.FindByCategoryPath(ctx, cat.Path)
	}
	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{CategoryID: cat.ID, SortBy: "name", SortOrder: "asc"})
	return products, err
}
