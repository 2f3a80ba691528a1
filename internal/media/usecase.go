package media

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/media/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	AddMedia(ctx context.Context, input *dto.AddMediaInput) (*model.Media, error)
	GetMedia(ctx context.Context, id string) (*model.Media, error)
	ListMedia(ctx context.Context, inventoryID string) ([]model.Media, error)
	GetFeatureImage(ctx context.Context, inventoryID string) (*model.Media, error)
	SetFeature(ctx context.Context, id string) (*model.Media, error)
	UpdateMedia(ctx context.Context, input *dto.UpdateMediaInput) (*model.Media, error)
	DeleteMedia(ctx context.Context, id string) error
}
