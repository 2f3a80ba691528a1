package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/media"
	"github.com/fekuna/omnipos-catalog-service/internal/media/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mediaUseCase struct {
	repo      media.Repository
	inventory inventory.Repository
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewMediaUseCase(repo media.Repository, inv inventory.Repository, log logger.ZapLogger) media.UseCase {
	return &mediaUseCase{
		repo:      repo,
		inventory: inv,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *mediaUseCase) AddMedia(ctx context.Context, input *dto.AddMediaInput) (*model.Media, error) {
	inv, err := uc.inventory.FindByID(ctx, input.ProductInventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("product inventory %s: %w", input.ProductInventoryID, apperror.ErrInvalidReference)
	}

	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}
	m := &model.Media{
		BaseModel:          model.BaseModel{ID: id},
		ProductInventoryID: inv.ID,
		Image:              input.Image,
		AltText:            input.AltText,
		IsFeature:          input.IsFeature,
	}
	m.ApplyDefaults()
	m.Touch(uc.now())
	if err := validation.Struct(m); err != nil {
		return nil, err
	}

	err = uc.repo.WithTx(ctx, func(repo media.Repository) error {
		if err := repo.Create(ctx, m); err != nil {
			return err
		}
		if m.IsFeature {
			return repo.ClearFeature(ctx, m.ProductInventoryID, m.ID)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to add media", zap.String("product_inventory_id", m.ProductInventoryID), zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (uc *mediaUseCase) GetMedia(ctx context.Context, id string) (*model.Media, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("media %s: %w", id, apperror.ErrNotFound)
	}
	return m, nil
}

func (uc *mediaUseCase) ListMedia(ctx context.Context, inventoryID string) ([]model.Media, error) {
	return uc.repo.FindByInventory(ctx, inventoryID)
}

// GetFeatureImage returns the feature image of a variant, else its oldest
// image, else an unsaved placeholder pointing at the default image.
func (uc *mediaUseCase) GetFeatureImage(ctx context.Context, inventoryID string) (*model.Media, error) {
	items, err := uc.repo.FindByInventory(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return &items[0], nil
	}
	return &model.Media{
		ProductInventoryID: inventoryID,
		Image:              model.DefaultImage,
		AltText:            model.DefaultAltText,
	}, nil
}

func (uc *mediaUseCase) SetFeature(ctx context.Context, id string) (*model.Media, error) {
	m, err := uc.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	m.IsFeature = true
	m.Touch(uc.now())

	err = uc.repo.WithTx(ctx, func(repo media.Repository) error {
		if err := repo.ClearFeature(ctx, m.ProductInventoryID, m.ID); err != nil {
			return err
		}
		return repo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *mediaUseCase) UpdateMedia(ctx context.Context, input *dto.UpdateMediaInput) (*model.Media, error) {
	m, err := uc.GetMedia(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	m.Image = input.Image
	m.AltText = input.AltText
	m.ApplyDefaults()
	m.Touch(uc.now())
	if err := validation.Struct(m); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *mediaUseCase) DeleteMedia(ctx context.Context, id string) error {
	if _, err := uc.GetMedia(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
